package resilience

import "time"

// Backoff é o cronograma de espera entre tentativas: Base * 2^attempt, limitado a Max.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay retorna a espera após a tentativa de índice attempt (0-based)
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if b.Base <= 0 {
		return 0
	}

	d := b.Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Schedule lista as esperas entre as tentativas de uma operação com maxAttempts tentativas
func (b Backoff) Schedule(maxAttempts int) []time.Duration {
	if maxAttempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, 0, maxAttempts-1)
	for i := 0; i < maxAttempts-1; i++ {
		delays = append(delays, b.Delay(i))
	}
	return delays
}
