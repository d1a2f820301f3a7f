package stats

// Summary aggregates the records of one simulation run.
type Summary struct {
	Completed     int     // records in the run (orders completed before the horizon)
	MeanWait      float64 // mean WaitForDriver (minutes)
	MeanTotal     float64 // mean TotalTime (minutes)
	SLACompliance float64 // percentage of records with SLAMet
}

// Summarize computes aggregate statistics from a record sequence.
// Safe for nil or empty input (returns zero-value fields); the record
// count is data-dependent and a run can legitimately complete nothing.
func Summarize(records []OrderRecord) Summary {
	s := Summary{Completed: len(records)}
	if len(records) == 0 {
		return s
	}

	var waitSum, totalSum float64
	met := 0
	for _, r := range records {
		waitSum += r.WaitForDriver
		totalSum += r.TotalTime
		if r.SLAMet {
			met++
		}
	}

	n := float64(len(records))
	s.MeanWait = waitSum / n
	s.MeanTotal = totalSum / n
	s.SLACompliance = float64(met) / n * 100

	return s
}
