package normalize

import (
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/tidwall/gjson"
)

// FromBlocks converts the block/pairs shape:
//
//	{"blocks": [{"aptitude": "Mile", "baseValue": 69, "baseRatings": {...},
//	  "goldValue": 69, "goldRatings": {...}, "pairs": [["Base", "Gold"], ["Base only"]]}]}
//
// Every pair is one draft. The gold record needs both a gold name and a gold
// profile; the profile exists when goldValue or goldRatings is present.
func FromBlocks(typ model.SkillType, blocks gjson.Result) []Draft {
	var out []Draft
	blocks.ForEach(func(_, block gjson.Result) bool {
		if !block.IsObject() {
			return true
		}
		apt := aptitudeOf(block.Get("aptitude"))
		base := profileOf(block.Get("baseValue"), block.Get("baseRatings"))

		goldValue, goldRatings := block.Get("goldValue"), block.Get("goldRatings")
		hasGold := goldValue.Exists() || goldRatings.Exists()
		gold := profileOf(goldValue, goldRatings)

		pairs := block.Get("pairs")
		if !pairs.IsArray() {
			return true
		}
		pairs.ForEach(func(_, pair gjson.Result) bool {
			if !pair.IsArray() {
				return true
			}
			items := pair.Array()
			if len(items) == 0 {
				return true
			}
			var d Draft
			if name, ok := nameOf(items[0]); ok {
				d.Members = append(d.Members, record(typ, name, model.Base, apt, base))
			}
			if len(items) > 1 && hasGold {
				if name, ok := nameOf(items[1]); ok {
					d.Members = append(d.Members, record(typ, name, model.Gold, apt, gold))
				}
			}
			out = append(out, d)
			return true
		})
		return true
	})
	return out
}

// FromGroups converts the grouped-arrays shape:
//
//	{"groups": [{"aptitude": "", "base": {"value": 1, "ratings": {...}, "skills": [...]},
//	  "upgraded": {"value": 2, "ratings": {...}, "skills": [...]}}]}
//
// Base and gold names pair by list position. When the lists differ in
// length the extra positions become one-sided drafts.
func FromGroups(typ model.SkillType, groups gjson.Result) []Draft {
	var out []Draft
	groups.ForEach(func(_, block gjson.Result) bool {
		baseData := block.Get("base")
		if !block.IsObject() || !baseData.IsObject() {
			return true
		}
		apt := aptitudeOf(block.Get("aptitude"))
		base := profileOf(baseData.Get("value"), baseData.Get("ratings"))
		baseNames := listOf(baseData.Get("skills"))

		upgraded := block.Get("upgraded")
		hasGold := upgraded.IsObject()
		var gold profile
		var goldNames []gjson.Result
		if hasGold {
			gold = profileOf(upgraded.Get("value"), upgraded.Get("ratings"))
			goldNames = listOf(upgraded.Get("skills"))
		}

		n := max(len(baseNames), len(goldNames))
		for i := 0; i < n; i++ {
			var d Draft
			if i < len(baseNames) {
				if name, ok := nameOf(baseNames[i]); ok {
					d.Members = append(d.Members, record(typ, name, model.Base, apt, base))
				}
			}
			if i < len(goldNames) {
				if name, ok := nameOf(goldNames[i]); ok {
					d.Members = append(d.Members, record(typ, name, model.Gold, apt, gold))
				}
			}
			out = append(out, d)
		}
		return true
	})
	return out
}

// FromFlat converts the flat-list shape:
//
//	[{"base": {"name": "...", "value": 1, "aptitude": "Turf", "ratings": {...}},
//	  "upgraded": {"name": "...", "value": 2, "ratings": {...}}}]
//
// One draft per item. The aptitude comes from base, else upgraded.
func FromFlat(typ model.SkillType, items gjson.Result) []Draft {
	var out []Draft
	items.ForEach(func(_, item gjson.Result) bool {
		baseData := item.Get("base")
		if !item.IsObject() || !baseData.IsObject() {
			return true
		}
		upgraded := item.Get("upgraded")
		hasGold := upgraded.IsObject()

		apt := aptitudeOf(baseData.Get("aptitude"))
		if apt == "" && hasGold {
			apt = aptitudeOf(upgraded.Get("aptitude"))
		}

		var d Draft
		if name, ok := nameOf(baseData.Get("name")); ok {
			base := profileOf(baseData.Get("value"), baseData.Get("ratings"))
			d.Members = append(d.Members, record(typ, name, model.Base, apt, base))
		}
		if hasGold {
			if name, ok := nameOf(upgraded.Get("name")); ok {
				gold := profileOf(upgraded.Get("value"), upgraded.Get("ratings"))
				d.Members = append(d.Members, record(typ, name, model.Gold, apt, gold))
			}
		}
		out = append(out, d)
		return true
	})
	return out
}

func listOf(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}
