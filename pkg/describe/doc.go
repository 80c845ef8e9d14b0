// Package describe renders the appearance attributes of a profile as text.
//
// Attributes live at BitSequence offsets 14 through 18. Offset 14 selects
// the category, which decides how offsets 15 to 17 read:
//
//	offset  category A (bit 14 set)      category B (bit 14 clear)
//	14      Man                          Woman
//	15      height vs 5'9" (175cm)       height vs 5'4" (162cm)
//	16      age vs 30.3 years            age vs 31.8 years
//	17      facial hair                  hair below shoulder
//	18      glasses                      glasses
//
// A sequence shorter than 19 bits yields only the statements for the offsets
// it has.
package describe
