package resp

// simplePZResp is a minimal, but structurally complete, single-channel RESP
// text: an overall-sensitivity stage (sequence 0), then one analog
// PolesZeros stage with its own gain (sequence 1). Used by validate_test.go
// and eval_test.go.
const simplePZResp = `
B050F03     Station:     TEST
B050F16     Network:     XX
B052F03     Location:    00
B052F04     Channel:     BHZ
B052F22     Start date:  2020,001,00:00:00
B052F23     End date:    No Ending Time
B058F03     Stage sequence number:                 0
B058F04     Gain:                                  8.000000E+02
B058F05     Gain frequency:                        1.000000E+00
B053F03     Transfer function type:                A
B053F04     Stage sequence number:                 1
B053F05     Response in units lookup:              M/S
B053F06     Response out units lookup:              V
B053F07     A0 normalization factor:               1.000000E+00
B053F08     Normalization frequency:               1.000000E+00
B053F09     Number of zeroes:                      1
B053F10     Real zero 0:                           0.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B053F14     Number of poles:                       1
B053F15     Real pole 0:                          -1.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B058F03     Stage sequence number:                 1
B058F04     Gain:                                  1.000000E+00
B058F05     Gain frequency:                        1.000000E+00
`

// firResp is a single-channel RESP text with an FIR stage (symmetric,
// trivially normalized) followed by its required Decimation and Gain.
const firResp = `
B050F03     Station:     TEST
B050F16     Network:     XX
B052F03     Location:    00
B052F04     Channel:     BHZ
B052F22     Start date:  2020,001,00:00:00
B052F23     End date:    No Ending Time
B061F03     Stage sequence number:                 1
B061F04     Response name:                         FIR_TEST
B061F05     Symmetry code:                         A
B061F06     Response in units lookup:              COUNTS
B061F07     Response out units lookup:              COUNTS
B061F08     Number of coefficients:                3
B061F09     Coefficient 0:                         2.500000E-01
B061F09     Coefficient 1:                         5.000000E-01
B061F09     Coefficient 2:                         2.500000E-01
B057F03     Stage sequence number:                 1
B057F04     Input sample rate:                     2.000000E+01
B057F05     Decimation factor:                     1
B057F06     Decimation offset:                     0
B057F07     Estimated delay:                       0.000000E+00
B057F08     Applied correction:                    0.000000E+00
B058F03     Stage sequence number:                 1
B058F04     Gain:                                  1.000000E+00
B058F05     Gain frequency:                        1.000000E+00
`
