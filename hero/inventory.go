package hero

// Inventory is a plain in-memory Equipment.
type Inventory struct {
	abilities map[Ability]bool
	used      map[Ability]int
	slots     [2]Item
	items     map[string]int
	life      int
	maxLife   int
}

func NewInventory(life int, abilities ...Ability) *Inventory {
	inv := &Inventory{
		abilities: make(map[Ability]bool),
		used:      make(map[Ability]int),
		items:     make(map[string]int),
		life:      life,
		maxLife:   life,
	}
	for _, a := range abilities {
		inv.abilities[a] = true
	}
	return inv
}

func (inv *Inventory) HasAbility(a Ability) bool { return inv.abilities[a] }

func (inv *Inventory) SetAbility(a Ability, enabled bool) { inv.abilities[a] = enabled }

func (inv *Inventory) NotifyAbilityUsed(a Ability) { inv.used[a]++ }

// AbilityUses returns how many times an ability was used.
func (inv *Inventory) AbilityUses(a Ability) int { return inv.used[a] }

// Assign puts an item in slot 1 or 2.
func (inv *Inventory) Assign(slot int, item Item) {
	if slot < 1 || slot > len(inv.slots) {
		return
	}
	inv.slots[slot-1] = item
}

func (inv *Inventory) ItemAssigned(slot int) Item {
	if slot < 1 || slot > len(inv.slots) {
		return nil
	}
	return inv.slots[slot-1]
}

func (inv *Inventory) Life() int { return inv.life }

func (inv *Inventory) MaxLife() int { return inv.maxLife }

func (inv *Inventory) RemoveLife(amount int) {
	inv.life -= amount
	if inv.life < 0 {
		inv.life = 0
	}
}

func (inv *Inventory) AddItem(name string, variant int) {
	if variant > inv.items[name] {
		inv.items[name] = variant
	}
}

// ItemVariant returns the best variant obtained of an item, zero if none.
func (inv *Inventory) ItemVariant(name string) int { return inv.items[name] }
