package hero

// ItemUsage is one use of an equipment item by the hero. The item keeps
// the hero in the using-item state until it calls Finish.
type ItemUsage struct {
	hero     *Hero
	item     Item
	finished bool
}

func (u *ItemUsage) Hero() *Hero { return u.hero }

func (u *ItemUsage) Item() Item { return u.item }

// Finish ends the usage. The hero goes back to the free state on its next
// update.
func (u *ItemUsage) Finish() { u.finished = true }

func (u *ItemUsage) IsFinished() bool { return u.finished }

// itemUpdater is implemented by items that animate their usage.
type itemUpdater interface {
	OnUsingUpdate(usage *ItemUsage)
}
