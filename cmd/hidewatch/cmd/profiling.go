package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hidewatch/hidewatch/internal/profiling"
)

// profileFlags holds the profiling state of one command instance.
type profileFlags struct {
	cpu   string
	mem   string
	trace string

	profiler  *profiling.Profiler
	stopCPU   func()
	stopTrace func()
}

// registerProfileFlags wires the profiling flags and lifecycle hooks
// onto the root command. The hooks also cover subcommands.
func registerProfileFlags(cmd *cobra.Command) {
	p := &profileFlags{profiler: profiling.NewProfiler()}

	pf := cmd.PersistentFlags()
	pf.StringVar(&p.cpu, "profile-cpu", "", "Write CPU profile to file")
	pf.StringVar(&p.mem, "profile-mem", "", "Write memory profile to file")
	pf.StringVar(&p.trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = p.start
	cmd.PersistentPostRunE = p.stop
}

func (p *profileFlags) start(_ *cobra.Command, _ []string) error {
	if p.cpu != "" {
		cleanup, err := p.profiler.StartCPU(p.cpu)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		p.stopCPU = cleanup
	}

	if p.trace != "" {
		cleanup, err := p.profiler.StartTrace(p.trace)
		if err != nil {
			if p.stopCPU != nil {
				p.stopCPU()
				p.stopCPU = nil
			}
			return fmt.Errorf("failed to start trace: %w", err)
		}
		p.stopTrace = cleanup
	}

	return nil
}

func (p *profileFlags) stop(_ *cobra.Command, _ []string) error {
	if p.stopCPU != nil {
		p.stopCPU()
		p.stopCPU = nil
	}

	if p.stopTrace != nil {
		p.stopTrace()
		p.stopTrace = nil
	}

	if p.mem != "" {
		if err := p.profiler.WriteHeap(p.mem); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
	}

	return nil
}
