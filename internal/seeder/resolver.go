package seeder

import (
	"fmt"
	"strings"
)

// maxResolveAttempts bounds how many times a single colliding value may
// be re-mutated before the run fails. Exhausting it is always a run
// failure; a record is never silently dropped.
const maxResolveAttempts = 5

// UniqueField declares a unique-constrained column of a stage and how to
// disambiguate a colliding value. Mutate receives the original value and
// a monotonically increasing token, so repeated resolutions of the same
// input are deterministic.
type UniqueField struct {
	Column string
	Mutate func(value string, token int) string
}

// Resolver removes collisions on unique columns, both inside a candidate
// batch and against everything it has already accepted in this run (the
// known-values snapshot).
type Resolver struct {
	known map[string]map[string]struct{}
	seq   int
}

func NewResolver() *Resolver {
	return &Resolver{known: make(map[string]map[string]struct{})}
}

// Resolve rewrites colliding values in place. On success the final
// values are merged into the known set for the entity's columns. If any
// value cannot be made unique within the attempt bound, the whole call
// fails with a UniquenessError and the batch must not be persisted.
func (r *Resolver) Resolve(entity string, rows []Row, fields []UniqueField) error {
	for _, field := range fields {
		seen := r.knownFor(entity, field.Column)
		batch := make(map[string]struct{}, len(rows))

		for _, row := range rows {
			original, ok := row[field.Column].(string)
			if !ok {
				return fmt.Errorf("unique column %s.%s holds %T, want string", entity, field.Column, row[field.Column])
			}

			value := original
			attempts := 0
			for r.collides(value, batch, seen) {
				attempts++
				if attempts > maxResolveAttempts {
					return &UniquenessError{Entity: entity, Column: field.Column, Value: value}
				}
				r.seq++
				value = field.Mutate(original, r.seq)
			}

			row[field.Column] = value
			batch[value] = struct{}{}
		}

		for value := range batch {
			seen[value] = struct{}{}
		}
	}
	return nil
}

func (r *Resolver) collides(value string, batch, seen map[string]struct{}) bool {
	if _, dup := batch[value]; dup {
		return true
	}
	_, dup := seen[value]
	return dup
}

func (r *Resolver) knownFor(entity, column string) map[string]struct{} {
	key := entity + "." + column
	if r.known[key] == nil {
		r.known[key] = make(map[string]struct{})
	}
	return r.known[key]
}

// MutateEmail disambiguates an email by tagging the local part, keeping
// it deliverable-looking: jane.doe@x.com becomes jane.doe+7@x.com.
func MutateEmail(value string, token int) string {
	at := strings.LastIndex(value, "@")
	if at < 0 {
		return fmt.Sprintf("%s+%d", value, token)
	}
	return fmt.Sprintf("%s+%d%s", value[:at], token, value[at:])
}

// MutateSuffix disambiguates a value by appending a short token.
func MutateSuffix(value string, token int) string {
	return fmt.Sprintf("%s-%d", value, token)
}
