package models

import "time"

// coreDataEpoch is the NSDate reference instant: 2001-01-01 00:00:00 UTC.
// The store records every date as seconds offset from it.
var coreDataEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeToCoreData converts a calendar time to the store's native timestamp
func TimeToCoreData(t time.Time) float64 {
	return t.Sub(coreDataEpoch).Seconds()
}

// CoreDataToTime converts the store's native timestamp to UTC time
func CoreDataToTime(ts float64) time.Time {
	seconds := int64(ts)
	nanos := int64((ts - float64(seconds)) * float64(time.Second))
	return coreDataEpoch.Add(time.Duration(seconds)*time.Second + time.Duration(nanos)).UTC()
}
