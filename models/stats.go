package models

// KeyCount is one row of a frequency table: a token or pair key and how many
// times it occurred. Tables are ordered by Count descending, Key ascending.
type KeyCount struct {
	Key   string
	Count int64
}

// TimingRecord captures the wall-clock cost of one statistic on one path.
// Seconds covers only the materializing step, not plan construction.
type TimingRecord struct {
	Task    string
	Method  string
	Seconds float64
}
