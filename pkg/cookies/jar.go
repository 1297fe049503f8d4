// Package cookies persists a small, fixed set of page settings in the
// document cookie store.
package cookies

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// DefaultExpiryDays is how long a saved setting lives.
const DefaultExpiryDays = 30

const expiresLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Jar reads and writes the recognized cookie names of a page.
type Jar struct {
	source ports.CookieSource
	names  []string
	expiry int
	now    func() time.Time
	logger *slog.Logger
}

// Option configures the Jar.
type Option func(*Jar)

// WithExpiryDays sets the number of days a saved value is kept.
func WithExpiryDays(days int) Option {
	return func(j *Jar) {
		j.expiry = days
	}
}

// WithClock overrides the time source used to compute expiry dates.
func WithClock(now func() time.Time) Option {
	return func(j *Jar) {
		j.now = now
	}
}

// WithLogger configures a logger for the Jar.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Jar) {
		j.logger = logger
	}
}

// New creates a Jar over source that only reads and writes the given names.
func New(source ports.CookieSource, names []string, opts ...Option) *Jar {
	j := &Jar{
		source: source,
		names:  slices.Clone(names),
		expiry: DefaultExpiryDays,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Names returns the recognized cookie names.
func (j *Jar) Names() []string {
	return slices.Clone(j.names)
}

func (j *Jar) recognized(name string) bool {
	return slices.Contains(j.names, name)
}

// Load parses the cookie string and returns the recognized entries.
// An entry without exactly one "=" fails the whole load.
func (j *Jar) Load() (map[string]string, error) {
	values := make(map[string]string)
	raw := strings.TrimSpace(j.source.Cookie())
	if raw == "" {
		return values, nil
	}

	for _, entry := range strings.Split(raw, ";") {
		parts := strings.Split(strings.TrimSpace(entry), "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", domain.ErrMalformedCookie, strings.TrimSpace(entry))
		}
		name := strings.TrimSpace(parts[0])
		if !j.recognized(name) {
			continue
		}
		values[name] = strings.TrimSpace(parts[1])
	}
	return values, nil
}

// Get returns a single recognized value.
func (j *Jar) Get(name string) (string, bool, error) {
	values, err := j.Load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[name]
	return v, ok, nil
}

// Save writes every recognized entry of values. Unknown names are ignored.
func (j *Jar) Save(values map[string]string) error {
	expires := j.now().UTC().AddDate(0, 0, j.expiry).Format(expiresLayout)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if !j.recognized(name) {
			j.logger.Debug("Ignoring unrecognized cookie", "name", name)
			continue
		}
		value := values[name]
		if strings.ContainsAny(value, ";=") {
			return fmt.Errorf("%w: value of %q contains a separator", domain.ErrMalformedCookie, name)
		}
		j.source.SetCookie(fmt.Sprintf("%s=%s; expires=%s; path=/", name, value, expires))
	}
	return nil
}

// Set saves a single value.
func (j *Jar) Set(name, value string) error {
	return j.Save(map[string]string{name: value})
}
