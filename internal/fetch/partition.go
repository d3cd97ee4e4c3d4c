package fetch

// PartitionRows returns the rows handled by worker out of workers when rows
// are dealt round-robin: worker t owns every row r with r%workers == t.
// The assignment is static; the union over all workers is every row exactly
// once.
func PartitionRows(rows, workers, worker int) []int {
	if workers <= 0 || worker < 0 || worker >= workers || rows <= 0 {
		return nil
	}
	out := make([]int, 0, (rows+workers-1)/workers)
	for r := worker; r < rows; r += workers {
		out = append(out, r)
	}
	return out
}
