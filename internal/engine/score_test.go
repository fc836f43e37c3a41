package engine

import "testing"

func TestScoreNegateInvolution(t *testing.T) {
	cases := []Score{Cp(150), Cp(-40), Neutral, Mate(3), Mated(7)}
	for _, s := range cases {
		if got := s.Negate().Negate(); got != s {
			t.Errorf("-(-%v) = %v, want %v", s, got, s)
		}
	}
}

func TestScoreNegateSwapsMateKinds(t *testing.T) {
	if got := Mate(4).Negate(); got != Mated(4) {
		t.Errorf("-MateIn(4) = %v, want MatedIn(4)", got)
	}
	if got := Mated(4).Negate(); got != Mate(4) {
		t.Errorf("-MatedIn(4) = %v, want MateIn(4)", got)
	}
}

func TestScoreAddNeutralIsIdentity(t *testing.T) {
	for _, s := range []Score{Cp(20), Mate(2), Mated(9)} {
		if got := s.Add(Neutral).Normalize(); got != s {
			t.Errorf("(%v + Neutral).Normalize() = %v, want %v", s, got, s)
		}
	}
}

func TestScoreAddCentipawns(t *testing.T) {
	if got := Cp(30).Add(Cp(12)).Normalize(); got != Cp(42) {
		t.Errorf("Cp(30)+Cp(12) = %v, want cp 42", got)
	}
}

func TestScoreNormalizeRecoversMateNearBestBand(t *testing.T) {
	near := Cp(int32(Best.rank() - 3))
	if got := near.Normalize(); got != Mate(3) {
		t.Errorf("Normalize() = %v, want mate 3", got)
	}
}

func TestScoreNormalizeRecoversMatedNearWorstBand(t *testing.T) {
	near := Cp(int32(Worst.rank() + 3))
	if got := near.Normalize(); got != Mated(3) {
		t.Errorf("Normalize() = %v, want mate -3", got)
	}
}

func TestScoreOuterSentinelOrder(t *testing.T) {
	order := []Score{Min, Worst, Neutral, Best, Max}
	for i := 0; i+1 < len(order); i++ {
		if !order[i].Less(order[i+1]) {
			t.Errorf("expected %v < %v", order[i], order[i+1])
		}
	}
}

func TestScoreTotalOrder(t *testing.T) {
	order := []Score{Mated(1), Mated(5), Cp(-500), Cp(0), Cp(500), Mate(5), Mate(1)}
	for i := 0; i+1 < len(order); i++ {
		if !order[i].Less(order[i+1]) {
			t.Errorf("expected %v < %v", order[i], order[i+1])
		}
	}
}

func TestMateInAddPlySaturates(t *testing.T) {
	s := Mate(MaxPly - 1).AddPly(10)
	if s.Value() != MaxPly {
		t.Errorf("AddPly overflow: got %d, want %d", s.Value(), MaxPly)
	}
}

func TestCentipawnAddPlyIsIdentity(t *testing.T) {
	s := Cp(37)
	if got := s.AddPly(12); got != s {
		t.Errorf("centipawn AddPly changed value: got %v, want %v", got, s)
	}
}

func TestMatedInSubPlySaturatesAtZero(t *testing.T) {
	s := Mated(2).SubPly(10)
	if s.Value() != 0 {
		t.Errorf("SubPly underflow: got %d, want 0", s.Value())
	}
}
