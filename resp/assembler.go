package resp

import "io"

// AssembleChannel drives the stage loop described in spec.md §4.4: it
// expects a B050 station header, then a B052 channel header, then reads
// filter/decimation/gain/reference blockettes until it sees the next B050
// header or EOF, grouping them into Stages by their SequenceNo field.
//
// The returned Channel is not yet validated or normalized; call Validate
// before evaluating it. An error in the B050/B052 headers returns a nil
// Channel; an error after them returns the partially-built Channel
// alongside the error so the caller can log context, but it must not be
// used further — ParseChannels discards it and, for a recoverable error
// (see spec.md §7), resynchronizes at the next B050.
func AssembleChannel(lx *Lexer, ctx *Context) (*Channel, error) {
	sh, err := parseStationHeader(lx, ctx)
	if err != nil {
		return nil, err
	}
	ch, err := parseChannelHeader(lx, ctx)
	if err != nil {
		return nil, err
	}

	channel := &Channel{
		Station:     sh.Station,
		Network:     sh.Network,
		Location:    ch.Location,
		ChannelCode: ch.Channel,
		StartTime:   ch.Start,
		EndTime:     ch.End,
	}
	ctx.SNCL = channel.Label()

	var curStage *Stage
	closeStage := func() {
		if curStage != nil {
			channel.Stages = append(channel.Stages, *curStage)
			curStage = nil
		}
	}

	for {
		prefix, ok, err := lx.PeekPrefix()
		if err != nil {
			closeStage()
			return channel, err
		}
		if !ok || prefix.BlocketteNo == 50 {
			// EOF or the next channel's header: finalize this one.
			closeStage()
			return channel, nil
		}
		if !isKnownBlockette(prefix.BlocketteNo) {
			closeStage()
			return channel, newErr(ctx, KindUndefinedPrefix, "unrecognized blockette number", nil)
		}

		b, err := parseBlockette(lx, ctx, prefix.BlocketteNo)
		if err != nil {
			closeStage()
			return channel, err
		}

		if curStage == nil || curStage.SequenceNo != b.SequenceNo {
			closeStage()
			curStage = &Stage{SequenceNo: b.SequenceNo}
		}
		curStage.Blockettes = append(curStage.Blockettes, b)
	}
}

// ParseChannels reads every channel response in the stream, validating
// each one and invoking fn with the result. A recoverable parse error
// (spec.md §7) drops the channel in progress and resynchronizes at the
// next B050 header rather than aborting the file; a non-recoverable error
// aborts the whole stream and is returned to the caller.
func ParseChannels(lx *Lexer, ctx *Context, fn func(*Channel, error)) error {
	for {
		prefix, ok, err := lx.PeekPrefix()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if prefix.BlocketteNo != 50 {
			if !isKnownBlockette(prefix.BlocketteNo) {
				return newErr(ctx, KindUndefinedPrefix, "expected a B050 station header", nil)
			}
			// Stray blockette outside any channel: skip it and keep
			// scanning for the next station header.
			if _, err := parseBlockette(lx, ctx, prefix.BlocketteNo); err != nil {
				return err
			}
			continue
		}

		ch, err := AssembleChannel(lx, ctx)
		if err != nil {
			if !kindOf(err).Recoverable() {
				return err
			}
			fn(nil, err)
			if syncErr := resyncToNextStation(lx, ctx); syncErr != nil && syncErr != io.EOF {
				return syncErr
			}
			continue
		}

		if verr := Validate(ctx, ch); verr != nil {
			fn(nil, verr)
			continue
		}
		fn(ch, nil)
	}
}

// resyncToNextStation discards lines until the next B050 header or EOF,
// per spec.md §7's "skip current channel" policy.
func resyncToNextStation(lx *Lexer, ctx *Context) error {
	for {
		prefix, ok, err := lx.PeekPrefix()
		if err != nil {
			return err
		}
		if !ok {
			return io.EOF
		}
		if prefix.BlocketteNo == 50 {
			return nil
		}
		if _, err := parseBlockette(lx, ctx, prefix.BlocketteNo); err != nil {
			// Still resynchronizing; a malformed blockette here is
			// expected noise, keep scanning forward line by line.
			if _, _, perr := lx.TryExpect(prefix.BlocketteNo, prefix.FieldNo); perr != nil {
				return perr
			}
		}
	}
}
