package resp

import (
	"strconv"
	"strings"
	"time"
)

// stationHeader holds the fields read from a B050 station blockette.
type stationHeader struct {
	Station string
	Network string
}

// parseStationHeader reads a B050 line's station (F03) field and, if
// present, its network (F16) field. No other B050 fields are read: a B050
// line with any other field number is left in the stream, where the B052
// channel header read that follows rejects it.
func parseStationHeader(lx *Lexer, ctx *Context) (stationHeader, error) {
	l, err := lx.Expect(50, 3)
	if err != nil {
		return stationHeader{}, err
	}
	station, err := lx.Field(l, 0)
	if err != nil {
		return stationHeader{}, err
	}

	network := ""
	if nl, ok, err := lx.TryExpect(50, 16); err != nil {
		return stationHeader{}, err
	} else if ok {
		network, err = lx.Field(nl, 0)
		if err != nil {
			return stationHeader{}, err
		}
	}

	return stationHeader{Station: station, Network: network}, nil
}

// channelHeader holds the fields read from a B052 channel blockette.
type channelHeader struct {
	Location   string
	Channel    string
	Start, End time.Time
	SampleRate float64
}

// parseChannelHeader reads a B052 line's location (F03), channel (F04),
// start (F22), end (F23), and sample-rate (F18) fields.
func parseChannelHeader(lx *Lexer, ctx *Context) (channelHeader, error) {
	l, err := lx.Expect(52, 3)
	if err != nil {
		return channelHeader{}, err
	}
	loc, err := lx.Field(l, 0)
	if err != nil {
		return channelHeader{}, err
	}

	l, err = lx.Expect(52, 4)
	if err != nil {
		return channelHeader{}, err
	}
	chn, err := lx.Field(l, 0)
	if err != nil {
		return channelHeader{}, err
	}

	rate := 0.0
	if rl, ok, err := lx.TryExpect(52, 18); err != nil {
		return channelHeader{}, err
	} else if ok {
		rate, err = lx.FieldFloat(rl, 0)
		if err != nil {
			return channelHeader{}, err
		}
	}

	l, err = lx.Expect(52, 22)
	if err != nil {
		return channelHeader{}, err
	}
	startStr, err := lx.Field(l, 0)
	if err != nil {
		return channelHeader{}, err
	}
	start, err := parseRespTime(ctx, startStr)
	if err != nil {
		return channelHeader{}, err
	}

	end := time.Time{}
	if el, ok, err := lx.TryExpect(52, 23); err != nil {
		return channelHeader{}, err
	} else if ok {
		endStr := strings.Join(el.Fields, " ")
		if endStr != "" && endStr != "No Ending Time" && !strings.EqualFold(endStr, "None") {
			end, err = parseRespTime(ctx, endStr)
			if err != nil {
				return channelHeader{}, err
			}
		}
	}

	return channelHeader{Location: loc, Channel: chn, Start: start, End: end, SampleRate: rate}, nil
}

// parseRespTime parses RESP's "YYYY,DDD,HH:MM:SS" (or the shorter
// "YYYY,DDD" with no time) timestamp format into UTC.
func parseRespTime(ctx *Context, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return time.Time{}, newErr(ctx, KindParseError, "malformed RESP timestamp \""+s+"\"", nil)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, newErr(ctx, KindParseError, "malformed year in \""+s+"\"", err)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, newErr(ctx, KindParseError, "malformed day-of-year in \""+s+"\"", err)
	}

	hour, min, sec, nsec := 0, 0, 0, 0
	if len(parts) >= 3 && parts[2] != "" {
		hms := strings.Split(parts[2], ":")
		if len(hms) > 0 {
			hour, _ = strconv.Atoi(hms[0])
		}
		if len(hms) > 1 {
			min, _ = strconv.Atoi(hms[1])
		}
		if len(hms) > 2 {
			secFloat, err := strconv.ParseFloat(hms[2], 64)
			if err != nil {
				return time.Time{}, newErr(ctx, KindParseError, "malformed seconds in \""+s+"\"", err)
			}
			sec = int(secFloat)
			nsec = int((secFloat - float64(sec)) * 1e9)
		}
	}

	return time.Date(year, time.January, 1, hour, min, sec, nsec, time.UTC).
		AddDate(0, 0, day-1), nil
}
