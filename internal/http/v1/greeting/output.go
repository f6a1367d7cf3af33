package greeting

// GetOutput is the response for GET /.
type GetOutput struct {
	Body Data
}
