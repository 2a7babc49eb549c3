package lottery

import "time"

// kst is Korea Standard Time. The draw calendar is anchored to Korean
// dates, so estimates must be computed in this zone regardless of where
// the program runs.
var kst = time.FixedZone("KST", 9*60*60)

// firstDrawDate is the date of draw #1.
var firstDrawDate = time.Date(2002, time.December, 7, 0, 0, 0, 0, kst)

// drawHour is the local hour after which a Saturday's draw counts as held.
// The broadcast starts around 20:45, so 21:00 is a safe cutoff.
const drawHour = 21

// EstimateLatestDrawNo returns the highest draw number expected to have
// been drawn by the given time. Draws are held once a week on Saturday
// evening; on a Saturday before 21:00 KST that week's draw has not
// happened yet and is not counted. The result is never below 1.
func EstimateLatestDrawNo(now time.Time) int {
	local := now.In(kst)

	days := int(local.Sub(firstDrawDate).Hours() / 24)
	estimated := days/7 + 1

	if local.Weekday() == time.Saturday && local.Hour() < drawHour {
		estimated--
	}

	if estimated < 1 {
		return 1
	}
	return estimated
}
