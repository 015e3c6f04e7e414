package comparison

// ListOptions filters comparison history.
type ListOptions struct {
	Name        string
	Significant *bool
	Limit       int
	Offset      int
}
