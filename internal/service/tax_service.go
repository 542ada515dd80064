package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

type TaxEngine interface {
	Calculate(profile domain.TaxProfile) (domain.TaxResult, error)
	SuggestSavings(profile domain.TaxProfile) ([]domain.TaxSuggestion, error)
	RecommendForm(profile domain.TaxProfile) (domain.ITRForm, error)
}

// TaxAssessment is the /api/tax response: liability, savings suggestions
// and the recommended return form, produced in one pass.
type TaxAssessment struct {
	Tax         domain.TaxResult       `json:"tax"`
	Suggestions []domain.TaxSuggestion `json:"suggestions"`
	ITRForm     domain.ITRForm         `json:"itr_form"`
}

type TaxService struct {
	tracer trace.Tracer
	engine TaxEngine
}

func NewTaxService(tracer trace.Tracer, engine TaxEngine) *TaxService {
	return &TaxService{tracer: tracer, engine: engine}
}

// Assess runs the full pipeline over one profile. The engine validates
// the profile once per call; the first failure wins.
func (s *TaxService) Assess(ctx context.Context, profile domain.TaxProfile) (*TaxAssessment, error) {
	_, span := s.tracer.Start(ctx, "tax-service.assess")
	defer span.End()

	result, err := s.engine.Calculate(profile)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.engine.SuggestSavings(profile)
	if err != nil {
		return nil, err
	}
	form, err := s.engine.RecommendForm(profile)
	if err != nil {
		return nil, err
	}
	return &TaxAssessment{
		Tax:         result,
		Suggestions: suggestions,
		ITRForm:     form,
	}, nil
}

// Suggestions returns only the savings suggestions for a profile. The
// report endpoint uses this to annotate the portfolio summary without a
// full assessment.
func (s *TaxService) Suggestions(ctx context.Context, profile domain.TaxProfile) ([]domain.TaxSuggestion, error) {
	_, span := s.tracer.Start(ctx, "tax-service.suggestions")
	defer span.End()

	return s.engine.SuggestSavings(profile)
}
