package greeting

// Message is the fixed greeting returned by the service.
const Message = "hello world!"

// Data models the greeting response payload.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"hello world!"`
}
