package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// statsView is the printed form of the stats command.
type statsView struct {
	Dataset      string             `json:"dataset"`
	Affiliations int                `json:"affiliations"`
	Publications int                `json:"publications"`
	Roots        int                `json:"roots"`
	Applied      map[string]int     `json:"applied"`
	Skipped      int                `json:"skipped"`
	Rejected     int                `json:"rejected"`
	Metrics      map[string]float64 `json:"metrics"`
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset and the store metrics",
		Args:  cobra.NoArgs,
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			view, err := s.stats()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if s.json {
				return writeJSON(w, view)
			}
			printStats(w, view)
			return nil
		}),
	}
}

func (s *session) stats() (*statsView, error) {
	pubs := s.store.AllPublications()
	roots := 0
	for _, id := range pubs {
		if s.store.Parent(id) == types.NoPublication {
			roots++
		}
	}

	families, err := s.registry.Gather()
	if err != nil {
		return nil, sysError(fmt.Errorf("gather metrics: %w", err))
	}

	return &statsView{
		Dataset:      s.cfg.Dataset,
		Affiliations: s.store.AffiliationCount(),
		Publications: len(pubs),
		Roots:        roots,
		Applied:      s.report.Applied,
		Skipped:      s.report.Skipped,
		Rejected:     len(s.report.Rejected),
		Metrics:      flattenMetrics(families),
	}, nil
}

// flattenMetrics renders counter families as name{label="value"} keys.
func flattenMetrics(families []*dto.MetricFamily) map[string]float64 {
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			out[metricKey(mf.GetName(), m.GetLabel())] = m.GetCounter().GetValue()
		}
	}
	return out
}

func metricKey(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, 0, len(labels))
	for _, lp := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return name + "{" + strings.Join(parts, ",") + "}"
}

func printStats(w io.Writer, v *statsView) {
	fmt.Fprintf(w, "dataset:      %s\n", v.Dataset)
	fmt.Fprintf(w, "affiliations: %d\n", v.Affiliations)
	fmt.Fprintf(w, "publications: %d (%d roots)\n", v.Publications, v.Roots)
	fmt.Fprintf(w, "skipped:      %d\n", v.Skipped)
	fmt.Fprintf(w, "rejected:     %d\n", v.Rejected)
	for _, kind := range types.RecordKinds {
		fmt.Fprintf(w, "applied %-12s %d\n", kind+":", v.Applied[kind])
	}

	keys := make([]string, 0, len(v.Metrics))
	for k := range v.Metrics {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s %g\n", k, v.Metrics[k])
	}
}
