// Package diagnostic runs one TB risk evaluation end to end: encode the
// answers, score them, ask the classifier for a risk class and attach the
// matching recommendation.
package diagnostic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/tbscreen/internal/features"
	"github.com/abhisek/tbscreen/internal/model"
	"github.com/abhisek/tbscreen/internal/recommend"
	"github.com/abhisek/tbscreen/internal/scoring"
	"github.com/abhisek/tbscreen/internal/store"
)

// Recorder receives an anonymised record of every completed evaluation.
// store.RunRepo satisfies it.
type Recorder interface {
	Append(ctx context.Context, run store.Run) error
}

// Insights are the descriptive indicators shown next to a result.
type Insights struct {
	BMI              float64               `json:"bmi"`
	BMIBand          string                `json:"bmi_band"`
	ActiveSymptoms   int                   `json:"active_symptoms"`
	DominantSymptoms []features.Symptom    `json:"dominant_symptoms"`
	RiskFactors      []features.RiskFactor `json:"risk_factors"`
	Alert            string                `json:"alert"`
}

// Result is the outcome of one evaluation. Class is nil when the classifier
// was unavailable; Label, Level and Actions are then empty.
type Result struct {
	ID          string            `json:"id"`
	Profile     features.Profile  `json:"-"`
	Features    features.Features `json:"features"`
	Vector      features.Vector   `json:"vector"`
	Score       float64           `json:"score"`
	Band        scoring.Band      `json:"band"`
	Class       *model.Class      `json:"class"`
	Label       string            `json:"label,omitempty"`
	Level       recommend.Level   `json:"level,omitempty"`
	Actions     []string          `json:"actions,omitempty"`
	ModelID     string            `json:"model_id,omitempty"`
	Insights    Insights          `json:"insights"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Classified reports whether the result carries a risk class.
func (r *Result) Classified() bool { return r != nil && r.Class != nil }

// FeatureVector returns a copy of the canonical feature vector.
func (r *Result) FeatureVector() features.Vector { return r.Vector.Clone() }

// ActionList returns a copy of the recommended actions, nil when the
// result is unclassified.
func (r *Result) ActionList() []string {
	if len(r.Actions) == 0 {
		return nil
	}
	return append([]string(nil), r.Actions...)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets where run records are sent. Default: none.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithClock sets the time source for GeneratedAt. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithScorer replaces the default weight profile.
func WithScorer(s scoring.Scorer) Option {
	return func(p *Pipeline) { p.scorer = s }
}

// WithIDs sets the result ID generator. Default: random UUIDs.
func WithIDs(next func() string) Option {
	return func(p *Pipeline) {
		if next != nil {
			p.newID = next
		}
	}
}

// Pipeline evaluates patients. It is safe for concurrent use.
type Pipeline struct {
	classifier model.Classifier
	scorer     scoring.Scorer
	recorder   Recorder
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// New returns a Pipeline backed by classifier. A nil classifier makes every
// evaluation heuristic-only.
func New(classifier model.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier: model.Guard(classifier),
		scorer:     scoring.Default(),
		logger:     zap.NewNop(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluate scores and classifies one patient.
//
// Encoding and vector-shape errors return (nil, err). When the classifier
// is unavailable the heuristic result is still returned together with the
// *model.UnavailableError. A class with no recommendation returns
// (nil, *recommend.UnknownClassError).
func (p *Pipeline) Evaluate(ctx context.Context, profile features.Profile, a features.Assessment) (*Result, error) {
	f, err := features.Build(profile, a)
	if err != nil {
		return nil, err
	}
	v := f.Vector()

	score, err := p.scorer.Score(v)
	if err != nil {
		return nil, err
	}
	band := scoring.BandFor(score)

	res := &Result{
		ID:       p.newID(),
		Profile:  profile,
		Features: f,
		Vector:   v,
		Score:    score,
		Band:     band,
		Insights: Insights{
			BMI:              profile.BMI(),
			BMIBand:          profile.BMIBand(),
			ActiveSymptoms:   f.ActiveSymptoms(),
			DominantSymptoms: f.DominantSymptoms(),
			RiskFactors:      features.RiskFactors(profile, a),
			Alert:            band.Message(),
		},
		GeneratedAt: p.now(),
	}

	class, err := p.classifier.Predict(ctx, v.Clone())
	res.ModelID = p.classifier.ID()
	if err != nil {
		if !model.IsUnavailable(err) {
			return nil, err
		}
		p.logger.Warn("Classifier unavailable, returning heuristic score only",
			zap.String("result_id", res.ID),
			zap.String("model", res.ModelID),
			zap.Float64("score", score),
			zap.Error(err),
		)
		p.record(ctx, res, store.OutcomeDegraded, nil)
		return res, err
	}

	plan, err := recommend.Map(int(class))
	if err != nil {
		p.logger.Error("Classifier returned a class with no recommendation",
			zap.String("result_id", res.ID),
			zap.String("model", res.ModelID),
			zap.Int("class", int(class)),
		)
		p.record(ctx, res, store.OutcomeIntegrityFault, &class)
		return nil, err
	}

	res.Class = &class
	res.Label = plan.Label
	res.Level = plan.Level
	res.Actions = plan.Actions

	p.logger.Info("Evaluation complete",
		zap.String("result_id", res.ID),
		zap.String("model", res.ModelID),
		zap.Float64("score", score),
		zap.String("band", string(band)),
		zap.Int("class", int(class)),
	)
	p.record(ctx, res, store.OutcomeClassified, &class)
	return res, nil
}

// EvaluateLabels decodes label answers and evaluates them.
func (p *Pipeline) EvaluateLabels(ctx context.Context, rp features.RawProfile, ra features.RawAssessment) (*Result, error) {
	profile, a, err := features.Parse(rp, ra)
	if err != nil {
		return nil, err
	}
	return p.Evaluate(ctx, profile, a)
}

func (p *Pipeline) record(ctx context.Context, res *Result, outcome store.Outcome, class *model.Class) {
	if p.recorder == nil {
		return
	}
	run := store.Run{
		ID:        res.ID,
		CreatedAt: res.GeneratedAt,
		ModelID:   res.ModelID,
		Score:     res.Score,
		Band:      string(res.Band),
		Label:     res.Label,
		Outcome:   outcome,
	}
	if class != nil {
		c := int(*class)
		run.Class = &c
	}
	if err := p.recorder.Append(ctx, run); err != nil {
		p.logger.Warn("Failed to record evaluation run",
			zap.String("result_id", res.ID),
			zap.Error(err),
		)
	}
}
