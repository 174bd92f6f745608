package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/piwi3910/LabelSheet/internal/model"
)

// Planner turns an identifier list into a SheetPlan for one label mode.
type Planner struct {
	Settings model.LayoutSettings
	logger   *zap.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func New(settings model.LayoutSettings, opts ...Option) *Planner {
	p := &Planner{Settings: settings, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan runs one packing pass. Settings are normalized first; an empty
// identifier list yields a plan with no sheets. Every call starts from
// scratch.
func (p *Planner) Plan(identifiers []string) model.SheetPlan {
	s := p.Settings.Normalize()

	var plan model.SheetPlan
	switch s.LabelMode {
	case model.ModeSmall:
		plan = Paginate(identifiers, model.KindSmall, s.SmallFootprint(), s.Margin, s.Gap, s.Orientation)
	case model.ModeCombo:
		plan = PackCombo(identifiers, s.LargeLabel, s.SmallFootprint(), s.Margin, s.Gap, s.Orientation, s.Copies())
	default:
		plan = Paginate(identifiers, model.KindLarge, s.LargeLabel, s.Margin, s.Gap, s.Orientation)
	}
	plan.ID = uuid.New().String()

	p.logger.Debug("sheet plan built",
		zap.String("plan_id", plan.ID),
		zap.String("mode", string(plan.Mode)),
		zap.String("orientation", plan.Orientation.String()),
		zap.Int("identifiers", len(identifiers)),
		zap.Int("sheets", len(plan.Sheets)),
		zap.Int("large", plan.Count(model.KindLarge)),
		zap.Int("small", plan.Count(model.KindSmall)),
	)
	return plan
}

// Grids returns the large and small grid configurations the normalized
// settings produce.
func (p *Planner) Grids() (large, small model.GridConfig) {
	s := p.Settings.Normalize()
	large = ComputeGrid(s.LargeLabel, s.Margin, s.Gap, s.Orientation)
	small = ComputeGrid(s.SmallFootprint(), s.Margin, s.Gap, s.Orientation)
	return large, small
}
