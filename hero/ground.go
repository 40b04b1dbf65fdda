package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/sirupsen/logrus"
)

const pricklesDamage = 2

func (h *Hero) checkGround() {
	g := h.groundBelow()
	if g == h.ground {
		return
	}
	h.ground = g
	h.notifyGroundBelowChanged()
}

// notifyGroundBelowChanged applies the hazard of the new ground unless the
// state avoids it, then tells the state.
func (h *Hero) notifyGroundBelowChanged() {
	st := h.state
	if !h.suspended && st.IsTouchingGround() {
		switch h.ground {
		case level.GroundDeepWater:
			if !st.CanAvoidDeepWater() {
				h.startDeepWater()
			}
		case level.GroundHole:
			if !st.CanAvoidHole() {
				h.StartFalling()
			}
		case level.GroundLava:
			if !st.CanAvoidLava() {
				h.StartPlunging()
			}
		case level.GroundPrickles:
			if !st.CanAvoidPrickle() {
				h.startPrickles()
			}
		}
	}
	if h.state == st {
		st.NotifyGroundBelowChanged()
	}
}

// StartStateFromGround picks the state matching the ground under the hero,
// typically after landing from a jump or a hookshot.
func (h *Hero) StartStateFromGround() {
	h.ground = h.groundBelow()
	switch h.ground {
	case level.GroundDeepWater:
		h.startDeepWater()
	case level.GroundHole:
		h.StartFalling()
	case level.GroundLava:
		h.StartPlunging()
	case level.GroundPrickles:
		h.startPrickles()
	case level.GroundShallowWater:
		h.SetState(NewWadingState(h))
	default:
		if item := h.carriedItem(); item != nil && !item.IsBroken() {
			h.SetState(NewCarryingState(h, item))
			return
		}
		h.SetState(NewFreeState(h))
	}
}

func (h *Hero) startDeepWater() {
	if h.ctx.Equipment.HasAbility(AbilitySwim) {
		h.SetState(NewSwimmingState(h))
		return
	}
	h.StartPlunging()
}

func (h *Hero) startPrickles() {
	h.ctx.Sounds.Play("hero_hurt")
	h.ctx.Equipment.RemoveLife(pricklesDamage)
	h.SetState(NewBackToSolidGroundState(h, true, h.ctx.Tuning.HurtDuration, false))
}

// checkCollisions reacts to the map entities overlapping the hero, as
// allowed by the state.
func (h *Hero) checkCollisions() {
	st := h.state
	if st.AreCollisionsIgnored() {
		return
	}
	var onJumper *level.Jumper
	onStairs := false
	cx, cy := h.groundPoint()
	for _, e := range h.ctx.Map.EntitiesOverlapping(h.layer, h.box) {
		if h.state != st {
			// a reaction already changed the state
			return
		}
		switch v := e.(type) {
		case *level.Stream:
			if v.Bounds().Contains(cx, cy) {
				h.notifyStream(v)
			}
		case *level.Teletransporter:
			if !st.CanAvoidTeletransporter() && v.Bounds().Contains(cx, cy) {
				h.teletransport(v)
			}
		case *level.Sensor:
			if !st.CanAvoidSensor() && !v.Activated {
				v.Activated = true
				h.log.WithField("sensor", v.Name()).Debug("sensor activated")
			}
		case *level.Switch:
			if !st.CanAvoidSwitch() && !v.Activated {
				v.Activated = true
				h.ctx.Sounds.Play("switch")
				h.log.WithField("switch", v.Name()).Debug("switch activated")
			}
		case *level.Explosion:
			if !st.CanAvoidExplosion() {
				if item := st.CarriedItem(); item != nil {
					item.Break()
				}
				h.Hurt(v, v.Damage)
			}
		case *level.Enemy:
			if v.IsAlive() {
				h.Hurt(v, v.Damage)
			}
		case *level.Jumper:
			onJumper = v
		case *level.Stairs:
			onStairs = true
			h.notifyStairs(v)
		}
	}
	if h.state != st {
		return
	}
	if !onStairs {
		h.stairsUsed = nil
	}
	h.checkJumper(onJumper)
}

func (h *Hero) notifyStream(s *level.Stream) {
	if cur, ok := h.state.(*StreamState); ok && cur.stream == s {
		cur.onStream = true
		return
	}
	if h.state.CanAvoidStream(s) {
		return
	}
	h.SetState(NewStreamState(h, s))
}

func (h *Hero) teletransport(t *level.Teletransporter) {
	h.ctx.Sounds.Play("warp")
	h.log.WithFields(logrus.Fields{"teletransporter": t.Name(), "map": t.DestinationMap}).Info("teletransporting")
	if t.DestinationMap != "" && h.OnTeletransport != nil {
		h.OnTeletransport(t)
		return
	}
	h.ClearMovement()
	h.SetPosition(t.DestX, t.DestY)
	if h.state.IsTouchingGround() {
		h.StartStateFromGround()
	}
}

func (h *Hero) notifyStairs(s *level.Stairs) {
	if h.stairsUsed == level.Entity(s) || !h.state.CanTakeStairs() {
		return
	}
	wanted := h.state.WantedMovementDirection8()
	up := s.Direction4 * 2
	var way StairsWay
	switch wanted {
	case up:
		way = StairsUp
	case common.Opposite8(up):
		way = StairsDown
	default:
		return
	}
	h.stairsUsed = s
	h.SetState(NewStairsState(h, s, way))
}

// checkJumper makes the hero jump after walking against a jumper in its
// direction for a short delay.
func (h *Hero) checkJumper(j *level.Jumper) {
	if j == nil || !h.state.CanTakeJumper() || !h.isMovingTowards8(j.Direction8) {
		h.jumper = nil
		h.jumperTimer.Stop()
		return
	}
	now := h.ctx.Clock.Now()
	if h.jumper != j {
		h.jumper = j
		h.jumperTimer.Start(now, h.ctx.Tuning.JumperDelay)
		return
	}
	if h.jumperTimer.Expired(now) {
		h.jumper = nil
		h.jumperTimer.Stop()
		h.StartJumping(j.Direction8, j.JumpLength, true, true)
	}
}
