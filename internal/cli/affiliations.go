package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// Affiliation list orders.
const (
	orderInsertion = "insertion"
	orderAlpha     = "alpha"
	orderDistance  = "distance"
)

// affiliationView is the printed form of an affiliation.
type affiliationView struct {
	ID   types.AffiliationID `json:"id"`
	Name types.Name          `json:"name"`
	X    int                 `json:"x"`
	Y    int                 `json:"y"`
}

func newAffiliationsCmd(flags *rootFlags) *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "affiliations",
		Short: "List affiliations",
		Long: "List every affiliation in insertion order, alphabetically by name, or\n" +
			"by increasing distance from the origin.",
		Args: cobra.NoArgs,
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			var ids []types.AffiliationID
			switch order {
			case orderInsertion:
				ids = s.store.AllAffiliations()
			case orderAlpha:
				ids = s.store.AffiliationsAlphabetically()
			case orderDistance:
				ids = s.store.AffiliationsDistanceIncreasing()
			default:
				return fmt.Errorf("unknown order %q (valid: %s, %s, %s)", order, orderInsertion, orderAlpha, orderDistance)
			}
			return s.printAffiliations(cmd, ids)
		}),
	}
	cmd.Flags().StringVar(&order, "order", orderInsertion, "insertion, alpha, or distance")
	return cmd
}

func newFindCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find <x> <y>",
		Short: "Find the affiliation at a coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			xy, err := parseCoord(args[0], args[1])
			if err != nil {
				return err
			}
			id := s.store.FindAffiliationWithCoord(xy)
			if id == types.NoAffiliation {
				return fmt.Errorf("no affiliation at (%d, %d)", xy.X, xy.Y)
			}
			return s.printAffiliations(cmd, []types.AffiliationID{id})
		}),
	}
}

func (s *session) printAffiliations(cmd *cobra.Command, ids []types.AffiliationID) error {
	views := make([]affiliationView, 0, len(ids))
	for _, id := range ids {
		xy := s.store.AffiliationCoord(id)
		views = append(views, affiliationView{ID: id, Name: s.store.AffiliationName(id), X: xy.X, Y: xy.Y})
	}

	w := cmd.OutOrStdout()
	if s.json {
		return writeJSON(w, views)
	}
	for _, v := range views {
		fmt.Fprintf(w, "%s\t(%d, %d)\t%s\n", v.ID, v.X, v.Y, v.Name)
	}
	return nil
}
