package similarity

// stopWords are dropped before set and vector comparisons. Entries are in
// normalized (accent-folded) form.
var stopWords = map[string]struct{}{
	// es
	"a": {}, "al": {}, "algo": {}, "como": {}, "con": {}, "cual": {}, "cuando": {},
	"de": {}, "del": {}, "donde": {}, "el": {}, "ella": {}, "en": {}, "entre": {},
	"era": {}, "es": {}, "esa": {}, "ese": {}, "eso": {}, "esta": {}, "este": {},
	"esto": {}, "estas": {}, "estos": {}, "fue": {}, "ha": {}, "hay": {}, "la": {},
	"las": {}, "le": {}, "les": {}, "lo": {}, "los": {}, "mas": {}, "me": {},
	"mi": {}, "mis": {}, "muy": {}, "ni": {}, "no": {}, "o": {}, "para": {},
	"pero": {}, "por": {}, "que": {}, "quien": {}, "se": {}, "si": {}, "sin": {},
	"sobre": {}, "su": {}, "sus": {}, "te": {}, "ti": {}, "tu": {}, "tus": {},
	"un": {}, "una": {}, "unas": {}, "uno": {}, "unos": {}, "y": {}, "ya": {},
	"yo": {}, "cuales": {}, "seria": {}, "serias": {},
	// en
	"an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"do": {}, "for": {}, "from": {}, "how": {}, "i": {}, "in": {}, "is": {},
	"it": {}, "of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "what": {},
	"which": {}, "with": {}, "would": {}, "you": {}, "your": {},
}
