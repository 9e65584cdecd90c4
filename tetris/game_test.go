package tetris

import (
	"testing"
	"time"
)

func TestGameStart(t *testing.T) {
	m := testMatrix(t, 20, 10)
	g, ticker := NewTestGame(m, TypeO, TypeI)
	g.Start()
	defer g.Stop()

	status := g.Read()
	if status.Active == nil {
		t.Fatal("Expected an active piece right after start")
	}
	if status.Next != TypeI {
		t.Errorf("Expected the I piece queued next, got %v", status.Next)
	}

	ticker.Tick()
	<-g.UpdateCh
	if !ticker.IsReset() {
		t.Error("Expected the gravity ticker to be reset on start")
	}
	if y := g.Read().Active.Y; y != BlockSize {
		t.Errorf("Expected the piece one cell down after a tick, got y=%d", y)
	}
}

func TestGameActions(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, before, after Status)
	}{
		{
			name:   "move left",
			action: MoveLeft,
			check: func(t *testing.T, before, after Status) {
				if after.Active.X != before.Active.X-BlockSize {
					t.Errorf("Expected x to shrink by %d, got %d -> %d",
						BlockSize, before.Active.X, after.Active.X)
				}
			},
		},
		{
			name:   "move right",
			action: MoveRight,
			check: func(t *testing.T, before, after Status) {
				if after.Active.X != before.Active.X+BlockSize {
					t.Errorf("Expected x to grow by %d, got %d -> %d",
						BlockSize, before.Active.X, after.Active.X)
				}
			},
		},
		{
			name:   "move down",
			action: MoveDown,
			check: func(t *testing.T, before, after Status) {
				if after.Active.Y != before.Active.Y+BlockSize {
					t.Errorf("Expected y to grow by %d, got %d -> %d",
						BlockSize, before.Active.Y, after.Active.Y)
				}
			},
		},
		{
			name:   "rotate clockwise",
			action: RotateRight,
			check: func(t *testing.T, before, after Status) {
				if len(after.Active.Cells) != len(before.Active.Cells[0]) {
					t.Error("Expected the piece dimensions to transpose")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMatrix(t, 20, 10)
			g, _ := NewTestGame(m, TypeT, TypeT)
			g.Start()
			defer g.Stop()

			before := g.Read()
			g.Action(tt.action)
			<-g.UpdateCh
			tt.check(t, before, g.Read())
		})
	}
}

func TestGameDropDown(t *testing.T) {
	m := testMatrix(t, 20, 10)
	g, _ := NewTestGame(m, TypeO, TypeI)
	g.Start()
	defer g.Stop()

	g.Action(DropDown)
	<-g.UpdateCh

	status := g.Read()
	if !status.Cells[19][2].Visible || !status.Cells[19][3].Visible {
		t.Error("Expected the dropped piece locked at the floor")
	}
	if status.Active == nil {
		t.Fatal("Expected the next piece to spawn without waiting for a tick")
	}
	if len(status.Cells[0]) != 10 || status.Active.Y != 0 {
		t.Error("Expected the fresh piece at the top of the field")
	}
}

func TestGameGravityLock(t *testing.T) {
	m := testMatrix(t, 20, 10)
	g, _ := NewTestGame(m, TypeO, TypeI)
	g.Start()
	defer g.Stop()

	ticker := g.ticker.(*MockTicker)
	for i := 0; i < 19; i++ {
		ticker.Tick()
		<-g.UpdateCh
	}

	status := g.Read()
	if !status.Cells[18][2].Visible || !status.Cells[19][3].Visible {
		t.Error("Expected the piece locked after riding gravity to the floor")
	}
	if status.Active == nil {
		t.Fatal("Expected the next piece spawned on the locking tick")
	}
	if len(status.Active.Cells) != 4 {
		t.Errorf("Expected the I piece next, got a %d-row piece", len(status.Active.Cells))
	}
}

func TestGameReadDuringPlay(t *testing.T) {
	m := testMatrix(t, 20, 10)
	g, _ := NewTestGame(m, TypeO)
	g.Start()
	defer g.Stop()

	done := make(chan bool)
	go func() {
		// every drop locks the piece and spawns the next one
		for i := 0; i < 8; i++ {
			g.Action(DropDown)
			<-g.UpdateCh
		}
		done <- true
	}()

	for {
		select {
		case <-done:
			return
		default:
			if g.Read().Cells == nil {
				t.Fatal("Expected a populated snapshot while the game runs")
			}
		}
	}
}

func TestGameRestart(t *testing.T) {
	m := testMatrix(t, 20, 10)
	fillRow(t, m, 0)
	g, _ := NewTestGame(m, TypeO)

	over := make(chan bool)
	go func() { over <- <-g.GameOverCh }()
	g.Start()
	<-over

	g.Start()
	defer g.Stop()

	if m.GameOver() {
		t.Fatal("Expected the field recycled for the new round")
	}
	status := g.Read()
	if status.Score != 0 {
		t.Errorf("Expected the score reset, got %d", status.Score)
	}
	if status.Active == nil {
		t.Fatal("Expected a piece spawned into the recycled field")
	}
	for r := range status.Cells {
		for c, cell := range status.Cells[r] {
			if cell.Visible {
				t.Fatalf("Expected cell (%d,%d) cleared by the restart", r, c)
			}
		}
	}

	g.Action(DropDown)
	<-g.UpdateCh
	status = g.Read()
	if !status.Cells[19][2].Visible || !status.Cells[19][3].Visible {
		t.Error("Expected the new round fully playable after the restart")
	}
}

func TestGameOver(t *testing.T) {
	m := testMatrix(t, 20, 10)
	fillRow(t, m, 0)
	g, ticker := NewTestGame(m, TypeO)

	over := make(chan bool)
	go func() { over <- <-g.GameOverCh }()
	g.Start()

	select {
	case <-over:
	case <-time.After(time.Second):
		t.Fatal("Expected a game over signal")
	}
	if !ticker.IsStop() {
		t.Error("Expected the ticker stopped on game over")
	}
	if !m.GameOver() {
		t.Error("Expected the field to report game over")
	}
}

func TestGameStop(t *testing.T) {
	m := testMatrix(t, 20, 10)
	g, ticker := NewTestGame(m, TypeO)
	g.Start()
	g.Stop()

	if !ticker.IsStop() {
		t.Error("Expected the ticker stopped")
	}
}
