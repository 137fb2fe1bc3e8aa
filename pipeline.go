package medlai

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Structurer turns raw discharge input into a DischargeRecord. It never fails;
// unparseable structured input degrades to free-text parsing.
type Structurer interface {
	Structure(raw string) *DischargeRecord
}

// Pipeline runs structuring and translation for one user session.
type Pipeline struct {
	structurer Structurer
	resolver   *Resolver
	session    *Session
	logger     zerolog.Logger
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithSession shares a session between pipelines.
func WithSession(s *Session) PipelineOption {
	return func(p *Pipeline) {
		p.session = s
	}
}

// WithPipelineLogger sets the pipeline logger.
func WithPipelineLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a pipeline from a structurer and a resolver.
func NewPipeline(structurer Structurer, resolver *Resolver, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		structurer: structurer,
		resolver:   resolver,
		session:    NewSession(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessResult is the outcome of one submission.
type ProcessResult struct {
	Token      uuid.UUID         `json:"token"`
	TargetLang string            `json:"targetLang"`
	Record     *DischargeRecord  `json:"record"`
	Translated *TranslatedRecord `json:"translated"`
	Errors     []CategoryError   `json:"errors"`
}

// Structure parses raw input without translating it.
func (p *Pipeline) Structure(raw string) *DischargeRecord {
	return p.structurer.Structure(raw)
}

// Process structures raw and translates it into targetLang. Starting a new
// Process call supersedes earlier ones: a superseded call returns
// ErrSuperseded and its result must be discarded.
func (p *Pipeline) Process(ctx context.Context, raw, targetLang string) (*ProcessResult, error) {
	token := p.session.Begin()
	log := p.logger.With().Str("token", token.String()).Str("target_lang", targetLang).Logger()

	record := p.structurer.Structure(raw)
	log.Debug().
		Str("format", record.InputFormat).
		Float64("completeness", record.Completeness).
		Msg("discharge text structured")

	translated, errs, err := p.resolver.Aggregate(ctx, record, targetLang)
	if err != nil {
		return nil, err
	}

	if !p.session.IsCurrent(token) {
		log.Debug().Msg("dropping superseded result")
		return nil, ErrSuperseded
	}

	if len(errs) > 0 {
		log.Warn().Int("failed_categories", len(errs)).Msg("some categories left untranslated")
	}

	return &ProcessResult{
		Token:      token,
		TargetLang: BaseLanguage(targetLang),
		Record:     record,
		Translated: translated,
		Errors:     errs,
	}, nil
}

// Session returns the pipeline's session.
func (p *Pipeline) Session() *Session {
	return p.session
}

// Resolver returns the pipeline's resolver.
func (p *Pipeline) Resolver() *Resolver {
	return p.resolver
}
