package compare

// DomainKnowledge is the static matching-policy block included in every
// comparison and verification prompt. The critical-distinction pairs must
// never be treated as equivalent; a violation is severity CRITICAL.
const DomainKnowledge = `MATCHING POLICY:
1. Part number equality is the strongest match signal. Normalized part
   numbers (case, separators, "P/N" prefixes removed) that are equal mean
   the same product unless descriptions clearly contradict.
2. Description similarity is the secondary signal. Treat common
   abbreviations as equivalent: SS = stainless steel, GALV = galvanized,
   ALUM = aluminum, ASSY = assembly, BRKR/BKR = breaker, XFMR =
   transformer, PNL = panel, W/ = with, W/O = without, 2P = 2-pole,
   3P = 3-pole.
3. CRITICAL DISTINCTIONS - never equivalent, mark severity CRITICAL if
   one is substituted for the other:
   - GFCI breaker vs standard breaker
   - AFCI breaker vs standard breaker
   - Voltage class differences (120V vs 208V vs 240V vs 480V)
   - Single-phase vs three-phase equipment
   - Fire-rated vs non-rated assemblies
   - Explosion-proof / hazardous-location rating vs standard rating
   - Copper vs aluminum conductors
   - Stainless steel vs carbon steel where a grade is specified
   - Wire gauge / ampacity class differences
4. When uncertain between MATCH and NO_MATCH, answer PARTIAL_MATCH with
   your honest confidence. A confident wrong answer is worse than an
   uncertain correct one.`
