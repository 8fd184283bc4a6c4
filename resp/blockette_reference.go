package resp

// parseReference reads a B060 Reference blockette: number of stages
// (F03), stage sequence number (F04), number of responses (F05). It is
// metadata only and contributes nothing to the response product
// (spec.md §3).
func parseReference(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	l, err := lx.Expect(blkt, 3)
	if err != nil {
		return Blockette{}, err
	}
	numStages, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 4)
	if err != nil {
		return Blockette{}, err
	}
	stageNum, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	numResponses := 0
	if rl, ok, err := lx.TryExpect(blkt, 5); err != nil {
		return Blockette{}, err
	} else if ok {
		numResponses, err = lx.FieldInt(rl, 0)
		if err != nil {
			return Blockette{}, err
		}
	}

	return Blockette{
		Kind:       KindReference,
		SequenceNo: uint16(stageNum),
		Reference: &Reference{
			NumStages:    numStages,
			StageNum:     stageNum,
			NumResponses: numResponses,
		},
	}, nil
}
