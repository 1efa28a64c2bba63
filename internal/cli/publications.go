package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

func newPublicationsCmd(flags *rootFlags) *cobra.Command {
	var after int
	cmd := &cobra.Command{
		Use:   "publications <affiliation>",
		Short: "List an affiliation's publications by year",
		Long: "List the publications of an affiliation published in or after a year,\n" +
			"ordered by year then name.",
		Args: cobra.ExactArgs(1),
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			id := types.AffiliationID(args[0])
			if !s.store.HasAffiliation(id) {
				return fmt.Errorf("unknown affiliation %q", id)
			}
			year := types.Year(math.MinInt)
			if cmd.Flags().Changed("after") {
				year = types.Year(after)
			}
			pairs := s.store.PublicationsAfter(id, year)
			ids := make([]types.PublicationID, 0, len(pairs))
			for _, p := range pairs {
				ids = append(ids, p.ID)
			}
			return s.printPublications(cmd.OutOrStdout(), ids)
		}),
	}
	cmd.Flags().IntVar(&after, "after", 0, "earliest year to include (default: every year)")
	return cmd
}

func newChainCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chain <publication>",
		Short: "List the ancestors of a publication",
		Long:  "List the publications a publication is referenced by, from its parent up to the root.",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			id, err := s.publicationArg(args[0])
			if err != nil {
				return err
			}
			return s.printPublications(cmd.OutOrStdout(), s.store.ReferencedByChain(id))
		}),
	}
}

func newCommonCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "common <publication> <publication>",
		Short: "Find the closest common ancestor of two publications",
		Args:  cobra.ExactArgs(2),
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			id1, err := s.publicationArg(args[0])
			if err != nil {
				return err
			}
			id2, err := s.publicationArg(args[1])
			if err != nil {
				return err
			}
			parent := s.store.ClosestCommonParent(id1, id2)
			if parent == types.NoPublication {
				return fmt.Errorf("publications %d and %d have no common ancestor", id1, id2)
			}
			return s.printPublications(cmd.OutOrStdout(), []types.PublicationID{parent})
		}),
	}
}

func newReferencesCmd(flags *rootFlags) *cobra.Command {
	var direct bool
	cmd := &cobra.Command{
		Use:   "references <publication>",
		Short: "List the publications below a publication",
		Long: "List every publication that transitively references a publication.\n" +
			"With --direct only its immediate children are listed.",
		Args: cobra.ExactArgs(1),
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			id, err := s.publicationArg(args[0])
			if err != nil {
				return err
			}
			ids := s.store.AllReferences(id)
			if direct {
				ids = s.store.DirectReferences(id)
			}
			return s.printPublications(cmd.OutOrStdout(), ids)
		}),
	}
	cmd.Flags().BoolVar(&direct, "direct", false, "list only direct references")
	return cmd
}

// publicationArg parses arg and checks that it names a loaded publication.
func (s *session) publicationArg(arg string) (types.PublicationID, error) {
	id, err := parsePublicationID(arg)
	if err != nil {
		return 0, err
	}
	if !s.store.HasPublication(id) {
		return 0, fmt.Errorf("unknown publication %d", id)
	}
	return id, nil
}
