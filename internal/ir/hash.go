package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration without colliding with old hashes.
const (
	DomainSpec = "craftplan/spec/v1"
	DomainPlan = "craftplan/plan/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SpecHash computes the content-addressed identity of a crafting problem.
// Two specs with the same items, initial inventory, goal, and rule catalog
// (including declaration order) hash identically; tool classes are part of
// the identity because they change search behavior.
func SpecHash(spec CraftSpec) (string, error) {
	items := make(Arr, len(spec.Items))
	for i, it := range spec.Items {
		items[i] = Str(it)
	}

	recipes := make(Arr, len(spec.Recipes))
	for i, r := range spec.Recipes {
		req := make(Arr, len(r.Requires))
		for j, name := range r.Requires {
			req[j] = Str(name)
		}
		recipes[i] = Obj{
			"name":     Str(r.Name),
			"cost":     Int(r.Cost),
			"requires": req,
			"consumes": QuantityObj(r.Consumes),
			"produces": QuantityObj(r.Produces),
		}
	}

	tools := make(Arr, 0, len(spec.Tools))
	classes := slices.Clone(spec.Tools)
	slices.SortFunc(classes, func(a, b ToolClass) int {
		return compareUTF16(a.Class, b.Class)
	})
	for _, tc := range classes {
		tiers := make(Arr, len(tc.Tiers))
		for j, t := range tc.Tiers {
			tiers[j] = Str(t)
		}
		tools = append(tools, Obj{"class": Str(tc.Class), "tiers": tiers})
	}

	obj := Obj{
		"items":   items,
		"initial": QuantityObj(spec.Initial),
		"goal":    QuantityObj(spec.Goal),
		"recipes": recipes,
		"tools":   tools,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("SpecHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSpec, canonical), nil
}

// PlanHash computes the content-addressed identity of an ordered action
// sequence.
func PlanHash(actions []string) (string, error) {
	arr := make(Arr, len(actions))
	for i, a := range actions {
		arr[i] = Str(a)
	}

	canonical, err := MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("PlanHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPlan, canonical), nil
}
