package arcade

// FallbackVocabulary pads small learned lists with beginner French-Turkish pairs
var FallbackVocabulary = []VocabularyItem{
	{Source: "bonjour", Target: "merhaba", PartOfSpeech: "interjection"},
	{Source: "merci", Target: "teşekkürler", PartOfSpeech: "interjection"},
	{Source: "chat", Target: "kedi", PartOfSpeech: "noun"},
	{Source: "chien", Target: "köpek", PartOfSpeech: "noun"},
	{Source: "maison", Target: "ev", PartOfSpeech: "noun"},
	{Source: "eau", Target: "su", PartOfSpeech: "noun"},
	{Source: "pain", Target: "ekmek", PartOfSpeech: "noun"},
	{Source: "livre", Target: "kitap", PartOfSpeech: "noun"},
	{Source: "école", Target: "okul", PartOfSpeech: "noun"},
	{Source: "ami", Target: "arkadaş", PartOfSpeech: "noun"},
	{Source: "soleil", Target: "güneş", PartOfSpeech: "noun"},
	{Source: "lune", Target: "ay", PartOfSpeech: "noun"},
	{Source: "pomme", Target: "elma", PartOfSpeech: "noun"},
	{Source: "fleur", Target: "çiçek", PartOfSpeech: "noun"},
	{Source: "mer", Target: "deniz", PartOfSpeech: "noun"},
	{Source: "rouge", Target: "kırmızı", PartOfSpeech: "adjective"},
	{Source: "grand", Target: "büyük", PartOfSpeech: "adjective"},
	{Source: "petit", Target: "küçük", PartOfSpeech: "adjective"},
	{Source: "beau", Target: "güzel", PartOfSpeech: "adjective"},
	{Source: "manger", Target: "yemek", PartOfSpeech: "verb"},
	{Source: "boire", Target: "içmek", PartOfSpeech: "verb"},
	{Source: "parler", Target: "konuşmak", PartOfSpeech: "verb"},
	{Source: "lire", Target: "okumak", PartOfSpeech: "verb"},
	{Source: "oui", Target: "evet", PartOfSpeech: "adverb"},
	{Source: "non", Target: "hayır", PartOfSpeech: "adverb"},
}

type poolEntry struct {
	item  VocabularyItem
	isNew bool
}

// Pool is the spawn candidate list of a session, unique by source text
type Pool struct {
	entries []poolEntry
}

// BuildPool returns learned alone when it has at least minLearned usable entries,
// otherwise learned followed by the fallback entries it does not already contain.
// Entries with an empty source or target are skipped.
func BuildPool(learned []VocabularyItem, minLearned int, fallback []VocabularyItem) Pool {
	seen := make(map[string]struct{}, len(learned)+len(fallback))
	entries := make([]poolEntry, 0, len(learned)+len(fallback))

	add := func(items []VocabularyItem, isNew bool) {
		for _, it := range items {
			if it.Source == "" || it.Target == "" {
				continue
			}
			if _, dup := seen[it.Source]; dup {
				continue
			}
			seen[it.Source] = struct{}{}
			entries = append(entries, poolEntry{item: it, isNew: isNew})
		}
	}

	add(learned, false)
	if len(entries) < minLearned {
		add(fallback, true)
	}
	return Pool{entries: entries}
}

// Len returns the number of candidates
func (p Pool) Len() int {
	return len(p.entries)
}

// Items returns the candidates in pool order
func (p Pool) Items() []VocabularyItem {
	items := make([]VocabularyItem, len(p.entries))
	for i, e := range p.entries {
		items[i] = e.item
	}
	return items
}

// IsNew reports whether source came from the fallback list
func (p Pool) IsNew(source string) bool {
	for _, e := range p.entries {
		if e.item.Source == source {
			return e.isNew
		}
	}
	return false
}
