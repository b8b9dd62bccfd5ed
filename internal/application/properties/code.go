package properties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"station-listings/internal/domain"

	"github.com/rs/zerolog/log"
)

// MaxCodeAttempts bounds the insert attempts for one create.
const MaxCodeAttempts = 5

// KST is the fixed UTC+9 zone listing codes are dated in.
var KST = time.FixedZone("KST", 9*60*60)

// CodePrefix returns the YYYYMMDD date of now in KST.
func CodePrefix(now time.Time) string {
	return now.In(KST).Format("20060102")
}

// BuildCode appends seq, zero-padded to two digits, to prefix. Sequences of
// 100 and above produce a longer suffix rather than an error.
func BuildCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%02d", prefix, seq)
}

// CodeStore is the part of the listing store the generator needs.
// InsertWithCode must return an error wrapping ErrCodeConflict when, and only
// when, the insert lost on the unique code index.
type CodeStore interface {
	CountCodePrefix(ctx context.Context, prefix string) (int64, error)
	InsertWithCode(ctx context.Context, p *domain.Property, code string) error
}

type codeState int

const (
	stateSeeded codeState = iota
	stateAttempting
	stateConflictRetry
	stateSucceeded
	stateExhausted
	stateFatal
)

// CodeGenerator assigns a date-prefixed daily sequence code to a new property
// and inserts it. Uniqueness is enforced by the store's unique index; the
// prefix count only seeds the first sequence number.
type CodeGenerator struct {
	Store       CodeStore
	Now         func() time.Time
	MaxAttempts int
}

// Insert stores p under a fresh code and returns that code. On success p.ID and
// p.Code are set. Only code conflicts are retried; any other store error is
// returned as is.
func (g *CodeGenerator) Insert(ctx context.Context, p *domain.Property) (string, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	maxAttempts := g.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = MaxCodeAttempts
	}

	prefix := CodePrefix(now())
	count, err := g.Store.CountCodePrefix(ctx, prefix)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("property code: count failed")
		return "", err
	}

	var (
		state   = stateSeeded
		seq     = int(count) + 1
		attempt int
		code    string
		lastErr error
	)
	for {
		switch state {
		case stateSeeded, stateConflictRetry:
			if attempt == maxAttempts {
				state = stateExhausted
				continue
			}
			if state == stateConflictRetry {
				seq++
			}
			attempt++
			code = BuildCode(prefix, seq)
			state = stateAttempting

		case stateAttempting:
			lastErr = g.Store.InsertWithCode(ctx, p, code)
			switch {
			case lastErr == nil:
				state = stateSucceeded
			case errors.Is(lastErr, ErrCodeConflict):
				codeConflicts.Inc()
				log.Warn().Str("code", code).Int("attempt", attempt).Msg("property code: conflict, retrying")
				state = stateConflictRetry
			default:
				state = stateFatal
			}

		case stateSucceeded:
			return code, nil

		case stateExhausted:
			codeExhausted.Inc()
			log.Error().Err(lastErr).Str("last_code", code).Int("attempts", attempt).Msg("property code: conflict after retries")
			return "", ErrCodeExhausted

		case stateFatal:
			log.Error().Err(lastErr).Str("code", code).Int("attempt", attempt).Msg("property code: insert failed")
			return "", lastErr
		}
	}
}
