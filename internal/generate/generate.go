// Package generate drafts contract documents for gym staff through the
// Gemini API.
package generate

import (
	"context"
	"errors"
	"fmt"
)

// Contract types the UI can request.
const (
	ContractFreelancer = "freelancer"
	ContractLabor      = "labor"
)

var (
	ErrUnknownContractType = errors.New("unknown contract type")
	// ErrAPIKeyMissing is returned at request time, not startup: the app
	// runs fine without a key until someone asks for a draft.
	ErrAPIKeyMissing = errors.New("generation API key not configured")
)

const (
	freelancerPrompt = "권투체육관 코치 프리랜서 위촉계약서 문구 (3.3% 공제 포함):"
	laborPrompt      = "권투체육관 직원 표준 근로계약서 초안:"
	promptSuffix     = "\n\n조건: 마크다운 기호 없이 깔끔한 평문으로 작성해줘. 중요 조항 위주로 간결하게."
)

// BuildPrompt combines the Korean template for a contract type with the
// caller's free-form details.
func BuildPrompt(contractType, info string) (string, error) {
	var base string
	switch contractType {
	case ContractFreelancer:
		base = freelancerPrompt
	case ContractLabor:
		base = laborPrompt
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownContractType, contractType)
	}
	return base + " " + info + promptSuffix, nil
}

// Generator produces a contract draft for one contract type.
type Generator interface {
	Generate(ctx context.Context, contractType, info string) (string, error)
}
