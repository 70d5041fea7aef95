package emergency

import "sort"

// StatusCountRow is one (location, status) or (year, month, status) group as
// returned by a store.
type StatusCountRow struct {
	Location string
	Year     int
	Month    int
	Status   string
	Count    int64
}

// GroupByLocation folds rows into one entry per location, keeping the order
// in which locations first appear.
func GroupByLocation(rows []StatusCountRow) []LocationStats {
	out := []LocationStats{}
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.Location]
		if !ok {
			i = len(out)
			index[r.Location] = i
			out = append(out, LocationStats{Location: r.Location})
		}
		out[i].CountsByStatus = append(out[i].CountsByStatus, StatusCount{Status: r.Status, Count: r.Count})
	}
	return out
}

// GroupByMonth folds rows into one entry per month with a total, sorted by
// (year, month) ascending.
func GroupByMonth(rows []StatusCountRow) []MonthlyStats {
	type key struct{ year, month int }

	out := []MonthlyStats{}
	index := map[key]int{}
	for _, r := range rows {
		k := key{r.Year, r.Month}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, MonthlyStats{Year: r.Year, Month: r.Month})
		}
		out[i].CountsByStatus = append(out[i].CountsByStatus, StatusCount{Status: r.Status, Count: r.Count})
		out[i].Total += r.Count
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Year != out[b].Year {
			return out[a].Year < out[b].Year
		}
		return out[a].Month < out[b].Month
	})
	return out
}
