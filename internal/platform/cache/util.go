package cache

import "time"

// TimeUntilNextMonth は now から翌月1日 00:00 (UTC) までの期間を返します。
func TimeUntilNextMonth(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}
