package domain

// TabularDataset is the parsed form of one upload: ordered rows of string fields.
// It is built once per upload and only read afterwards.
type TabularDataset struct {
	Rows [][]string
}

// Len returns the number of rows.
func (d TabularDataset) Len() int {
	return len(d.Rows)
}

func (d TabularDataset) IsEmpty() bool {
	return len(d.Rows) == 0
}
