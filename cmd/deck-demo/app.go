package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/audio"
	"github.com/lixenwraith/card-deck/config"
	"github.com/lixenwraith/card-deck/deck"
	"github.com/lixenwraith/card-deck/gesture"
	"github.com/lixenwraith/card-deck/render"
	"github.com/lixenwraith/card-deck/scheduler"
	"github.com/lixenwraith/card-deck/stack"
	"github.com/lixenwraith/card-deck/status"
)

const (
	moreCards  = 5
	volumeStep = 0.1
)

// app owns the deck and everything that feeds or presents it
// All methods run on the event loop goroutine
type app struct {
	screen   tcell.Screen
	viewport render.Viewport
	opt      gesture.Option
	log      *slog.Logger

	deck     *deck.Deck[string, profile]
	animator *anim.Animator[string]
	sched    *scheduler.Scheduler
	binder   *stack.Binder[string]
	tracker  *gesture.Tracker
	renderer *render.Renderer[string, profile]
	player   audio.Player
	reg      *status.Registry

	dragging  bool
	dragID    string
	overlay   render.Overlay
	quota     int
	limited   bool
	charged   map[string]bool
	generated int
	lastTick  time.Time
}

func newApp(screen tcell.Screen, cfg *config.Config, clock scheduler.Clock, player audio.Player, log *slog.Logger) *app {
	cols, rows := screen.Size()
	a := &app{
		screen:   screen,
		viewport: render.NewViewport(cols, rows, 0),
		opt:      cfg.Option(),
		log:      log,
		animator: anim.NewAnimator[string](),
		sched:    scheduler.New(clock),
		tracker:  gesture.NewTracker(),
		player:   player,
		reg:      status.NewRegistry(),
		quota:    cfg.Demo.Quota,
		limited:  cfg.Demo.Quota > 0,
		charged:  make(map[string]bool),
	}
	a.lastTick = a.sched.Clock().Now()

	a.deck = deck.New(newProfiles(0, cfg.Demo.Cards), deck.Config[string]{
		Callbacks: deck.Callbacks[string]{
			OnJudged: a.onJudged,
			OnBack:   a.onBack,
		},
		Driver: a.animator,
		Bounds: a.viewport.Bounds(),
		Status: a.reg,
		Logger: log,
	})
	a.generated = cfg.Demo.Cards
	a.deck.Subscribe(audio.Handler(player))

	a.binder = stack.NewBinder[string](a.deck, stack.BinderConfig[string]{
		Option:    a.opt,
		OnChange:  func(s gesture.State[string]) { a.overlay = render.OverlayOf(s) },
		Scheduler: a.sched,
		Status:    a.reg,
		Logger:    log,
	})
	if a.limited {
		a.binder.SetStrategy(stack.NewQuotaPolicy[string](nil,
			func(string) bool { return a.quota > 0 },
			a.binder.RejectLater,
		))
	}

	a.renderer = render.NewRenderer[string](screen, render.DefaultTheme(), profile.Label)
	return a
}

func (a *app) onJudged(id string, dir gesture.Direction) {
	if a.limited && a.quota > 0 {
		a.quota--
		a.charged[id] = true
	}
	a.log.Info("judged", "id", id, "direction", dir.String())
}

func (a *app) onBack(id string, dir gesture.Direction) {
	if a.charged[id] {
		delete(a.charged, id)
		a.quota++
	}
	a.log.Info("back", "id", id, "direction", dir.String())
}

// handleEvent applies one terminal event and reports whether to keep running
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.viewport = render.NewViewport(cols, rows, a.viewport.Scale)
		a.deck.SetBounds(a.viewport.Bounds())
		a.screen.Sync()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.commit(gesture.Left)
	case tcell.KeyRight:
		a.commit(gesture.Right)
	case tcell.KeyUp:
		a.commit(gesture.Top)
	case tcell.KeyDown:
		a.commit(gesture.Bottom)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.binder.Undo()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			a.commit(gesture.Left)
		case 'l':
			a.commit(gesture.Right)
		case 'k':
			a.commit(gesture.Top)
		case 'j':
			a.commit(gesture.Bottom)
		case 'u':
			a.binder.Undo()
		case 'n':
			a.appendCards(moreCards)
		case 'm':
			a.player.ToggleMute()
		case '+', '=':
			a.player.SetVolume(a.player.Volume() + volumeStep)
		case '-':
			a.player.SetVolume(a.player.Volume() - volumeStep)
		}
	}
	return true
}

// commit swipes the target from the keyboard under the same quota as drags
func (a *app) commit(dir gesture.Direction) {
	target, _ := a.deck.Target()
	allowed := !a.limited || a.quota > 0
	if a.binder.Commit(dir) && !allowed {
		a.binder.RejectLater(target)
	}
}

// appendCards extends the collection, which reconciles judged cards out of the deck
func (a *app) appendCards(n int) {
	next := append(a.deck.Elements(), newProfiles(a.generated, n)...)
	a.generated += n
	a.deck.SetElements(next)
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := a.viewport.FromCells(x, y)
	now := a.sched.Clock().Now()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !a.dragging:
		target, ok := a.deck.Target()
		if !ok || !a.viewport.HitTest(a.presented(target), x, y) {
			return
		}
		if !a.binder.Begin(target) {
			return
		}
		a.dragging, a.dragID = true, target
		a.tracker.Begin(p, now)

	case pressed && a.dragging:
		translation, predicted := a.tracker.Move(p, now)
		if _, ok := a.binder.Update(a.dragID, translation, predicted); !ok {
			// Aborted under the finger, e.g. by a deferred reject
			a.overlay = render.Overlay{}
		}

	case !pressed && a.dragging:
		translation, predicted := a.tracker.End(p, now)
		a.binder.End(a.dragID, translation, predicted)
		a.dragging = false
		a.overlay = render.Overlay{}
	}
}

// presented is the on-screen pose, falling back to the model pose
func (a *app) presented(id string) deck.Visual {
	if p, ok := a.animator.Presented(id); ok {
		return p
	}
	v, _ := a.deck.Visual(id)
	return v
}

// tick advances springs and deferred work to the clock's now
func (a *app) tick() {
	now := a.sched.Clock().Now()
	dt := now.Sub(a.lastTick)
	a.lastTick = now
	if dt > 0 {
		a.animator.Step(dt)
	}
	a.sched.Fire()
}

func (a *app) draw() {
	frame := stack.BuildFrame[string, profile](a.deck, a.opt, a.animator.Presented)
	a.renderer.Draw(a.viewport, frame, a.overlay, a.hud())
}

func (a *app) hud() string {
	s := "←↓↑→/hjkl swipe  u undo  n more  m mute  +/- vol  q quit | " + render.FormatStatus(a.reg.Snapshot())
	if a.limited {
		s += fmt.Sprintf(" quota=%d", a.quota)
	}
	if a.player.Muted() {
		s += " sound=off"
	} else {
		played, dropped := a.player.Stats()
		s += fmt.Sprintf(" vol=%.1f cues=%d/%d", a.player.Volume(), played, dropped)
	}
	if a.deck.Exhausted() {
		s = "no more cards | " + s
	}
	return s
}

