// Package feed loads bar and tick series from CSV files. The engine
// itself never sorts; files are expected to be in ascending time order
// unless the caller applies SortBars/SortTicks first.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bpzj/backtest/market"
)

// barColumns is the expected bar CSV layout:
// time,open,high,low,close,volume
const barColumns = 6

// tickColumns is the expected tick CSV layout:
// time,last_price,volume, then bid1..bid5 and ask1..ask5 price/volume pairs.
const tickColumns = 3 + 4*market.Depth

// ReadBars loads a bar CSV. The time column accepts unix seconds or a
// 2006-01-02 date; a header row is skipped automatically.
func ReadBars(path string) ([]market.Bar, error) {
	var bars []market.Bar
	err := readRows(path, barColumns, func(row []string) error {
		bar, err := parseBar(row)
		if err != nil {
			return err
		}
		bars = append(bars, bar)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bars, nil
}

// ReadTicks loads a tick CSV with five levels of depth per side.
func ReadTicks(path string) ([]market.Tick, error) {
	var ticks []market.Tick
	err := readRows(path, tickColumns, func(row []string) error {
		tick, err := parseTick(row)
		if err != nil {
			return err
		}
		ticks = append(ticks, tick)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticks, nil
}

// SortBars orders bars by ascending time, in place. The runner never
// sorts on its own; call this when the source file isn't already
// chronological.
func SortBars(bars []market.Bar) {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time < bars[j].Time })
}

// SortTicks orders ticks by ascending time, in place.
func SortTicks(ticks []market.Tick) {
	sort.SliceStable(ticks, func(i, j int) bool { return ticks[i].Time < ticks[j].Time })
}

func readRows(path string, columns int, handle func([]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if len(row) == 0 {
			continue
		}
		// Header rows start with a non-numeric time column.
		if line == 1 && !isTimeField(row[0]) {
			continue
		}
		if len(row) < columns {
			return fmt.Errorf("%s line %d: need %d columns, got %d", path, line, columns, len(row))
		}
		if err := handle(row); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}

func parseBar(row []string) (market.Bar, error) {
	var bar market.Bar
	var err error

	if bar.Time, err = parseTime(row[0]); err != nil {
		return bar, err
	}

	fields := []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close}
	for i, dst := range fields {
		if *dst, err = parseFloat(row[i+1]); err != nil {
			return bar, err
		}
	}

	if bar.Volume, err = parseInt(row[5]); err != nil {
		return bar, err
	}
	return bar, nil
}

func parseTick(row []string) (market.Tick, error) {
	var tick market.Tick
	var err error

	if tick.Time, err = parseTime(row[0]); err != nil {
		return tick, err
	}
	if tick.LastPrice, err = parseFloat(row[1]); err != nil {
		return tick, err
	}
	if tick.Volume, err = parseInt(row[2]); err != nil {
		return tick, err
	}

	col := 3
	for i := 0; i < market.Depth; i++ {
		if tick.Bids[i], err = parseLevel(row[col], row[col+1]); err != nil {
			return tick, err
		}
		col += 2
	}
	for i := 0; i < market.Depth; i++ {
		if tick.Asks[i], err = parseLevel(row[col], row[col+1]); err != nil {
			return tick, err
		}
		col += 2
	}
	return tick, nil
}

func parseLevel(price, volume string) (market.Level, error) {
	p, err := parseFloat(price)
	if err != nil {
		return market.Level{}, err
	}
	v, err := parseInt(volume)
	if err != nil {
		return market.Level{}, err
	}
	return market.Level{Price: p, Volume: v}, nil
}

func parseTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ts, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	return 0, fmt.Errorf("bad time %q", s)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad integer %q", s)
	}
	return v, nil
}

func isTimeField(s string) bool {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	return false
}
