// Package match scores how well a peer's profile agrees with the local one.
//
// Only the first 14 window bits of the local profile take part: all eight bit
// positions of local byte 0 and positions 0 through 5 (least significant
// first) of local byte 1. Each remote byte consults one local byte, in order.
//
// For a window position k whose local bit is set, the remote byte is checked
// at the paired position: k+1 when k is even, k-1 when k is odd. A set
// remote bit there adds one to the score. Clear local bits never contribute,
// whatever the remote bit is.
//
//	local  byte 0:  7 6 5 4 3 2 1 0
//	remote byte 0:  6 7 4 5 2 3 0 1   (position checked for each local bit)
package match
