package calculator

import "go-chi-simpson/internal/simpson"

// IntegrateRequest is the JSON body for POST /calculator/integrate. Fields
// left out of the body keep their values from simpson.DefaultParams.
type IntegrateRequest simpson.Params

func newIntegrateRequest() IntegrateRequest {
	return IntegrateRequest(simpson.DefaultParams())
}

// IntegrateResponse is the JSON response for POST /calculator/integrate.
type IntegrateResponse struct {
	A          float64        `json:"a"`
	B          float64        `json:"b"`
	N          int            `json:"n"`
	Expression string         `json:"expression"`
	H          float64        `json:"h"`
	Result     float64        `json:"result"`
	Steps      []simpson.Step `json:"steps"`
}

// ValidateRequest is the JSON body for POST /calculator/validate.
type ValidateRequest struct {
	Expression string `json:"expression"`
}
