package pipeline

import "github.com/AccelByte/extend-churn-dataset/pkg/generator"

// Pipeline is the ordered plan of one run: generator stages, then sinks.
type Pipeline struct {
	Name   string   // Pipeline name
	Stages []string // Generator stages, in execution order
	Sinks  []string // Sink IDs, in execution order
}

// NewPipeline creates a new pipeline with the generator's stages.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		Name:   name,
		Stages: append([]string(nil), generator.Stages...),
	}
}

// AddSinks appends sinks to run after generation.
func (p *Pipeline) AddSinks(sinkIDs ...string) *Pipeline {
	p.Sinks = append(p.Sinks, sinkIDs...)
	return p
}

// FromConfig creates a pipeline running the enabled sinks of config in file order.
func FromConfig(name string, config *Config) *Pipeline {
	p := NewPipeline(name)
	for _, s := range config.EnabledSinks() {
		p.AddSinks(s.ID)
	}
	return p
}

// Steps returns every step name in execution order.
func (p *Pipeline) Steps() []string {
	steps := append([]string(nil), p.Stages...)
	for _, id := range p.Sinks {
		steps = append(steps, SinkStage(id))
	}
	return steps
}

// SinkStage returns the stage name of a sink write.
func SinkStage(sinkID string) string {
	return "sink." + sinkID
}
