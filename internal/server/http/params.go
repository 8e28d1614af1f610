package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
)

const dateLayout = "2006-01-02"

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.FromString(chi.URLParam(r, "id"))
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// queryInt reads an integer query parameter, returning def when absent
// or unparsable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
