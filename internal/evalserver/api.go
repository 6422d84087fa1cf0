package evalserver

// Routes served by the evaluator service.
const (
	CalculatePath = "/v1/calculate"
	HealthPath    = "/v1/health"
)

// CalculateRequest is the body of POST /v1/calculate.
type CalculateRequest struct {
	Expression string `json:"expression"`
}

// CalculateResponse carries a successful result.
type CalculateResponse struct {
	Result string `json:"result"`
}

// ErrorResponse carries the evaluator's failure message. Clients surface it
// verbatim so that divide-by-zero can be recognised on the other side.
type ErrorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}
