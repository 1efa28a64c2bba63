// Shared helpers for scholar CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func parsePublicationID(arg string) (types.PublicationID, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid publication id %q", arg)
	}
	return types.PublicationID(id), nil
}

func parseCoord(xArg, yArg string) (types.Coord, error) {
	x, err := strconv.Atoi(xArg)
	if err != nil {
		return types.Coord{}, fmt.Errorf("invalid x coordinate %q", xArg)
	}
	y, err := strconv.Atoi(yArg)
	if err != nil {
		return types.Coord{}, fmt.Errorf("invalid y coordinate %q", yArg)
	}
	return types.Coord{X: x, Y: y}, nil
}

// publicationView is the printed form of a publication.
type publicationView struct {
	ID   types.PublicationID `json:"id"`
	Name types.Name          `json:"name"`
	Year types.Year          `json:"year"`
}

func (s *session) publicationViews(ids []types.PublicationID) []publicationView {
	views := make([]publicationView, 0, len(ids))
	for _, id := range ids {
		views = append(views, publicationView{
			ID:   id,
			Name: s.store.PublicationName(id),
			Year: s.store.PublicationYear(id),
		})
	}
	return views
}

// printPublications prints one publication per line, or a JSON array.
func (s *session) printPublications(w io.Writer, ids []types.PublicationID) error {
	views := s.publicationViews(ids)
	if s.json {
		return writeJSON(w, views)
	}
	for _, v := range views {
		fmt.Fprintf(w, "%d\t%d\t%s\n", v.ID, v.Year, v.Name)
	}
	return nil
}
