package engine

import "github.com/corvidlabs/chessnnue/internal/board"

// pieceValues are the material values used by SEE only; they deliberately
// differ from the board package's own piece-value table (which prices a
// king at its material weight) because SEE needs a king value large enough
// that the king is always the last, and effectively never the losing,
// attacker in an exchange.
var pieceValues = [6]int{100, 325, 350, 500, 900, 100000}

// SEE computes the expected material gain of the capture chain started by
// playing m, assuming both sides recapture with their cheapest attacker
// until neither side wants to continue.
func SEE(pos *board.Position, m board.Move) int {
	from := m.From()
	to := m.To()

	attacker := pos.PieceAt(from)
	if attacker == board.NoPiece {
		return 0
	}

	var gain int
	if m.IsEnPassant() {
		gain = pieceValues[board.Pawn]
	} else {
		victim := pos.PieceAt(to)
		if victim == board.NoPiece {
			return 0
		}
		gain = pieceValues[victim.Type()]
	}
	if m.IsPromotion() {
		gain += pieceValues[m.Promotion()] - pieceValues[board.Pawn]
	}

	return seeSwap(pos, to, from, attacker, gain)
}

func seeSwap(pos *board.Position, target, excludeFrom board.Square, firstAttacker board.Piece, initialGain int) int {
	var gain [32]int
	d := 0
	gain[d] = initialGain

	occupied := pos.AllOccupied &^ board.SquareBB(excludeFrom)
	attackerValue := pieceValues[firstAttacker.Type()]
	side := firstAttacker.Color().Other()

	for {
		d++
		gain[d] = attackerValue - gain[d-1]
		if max(-gain[d-1], gain[d]) < 0 || d == len(gain)-1 {
			break
		}

		attackerSq, attackerPiece := leastValuableAttacker(pos, target, side, occupied)
		if attackerSq == board.NoSquare {
			break
		}

		occupied &^= board.SquareBB(attackerSq)
		attackerValue = pieceValues[attackerPiece.Type()]
		side = side.Other()
	}

	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking target
// given the current occupancy, in Pawn..King order. A king is only
// returned as an attacker when the target square would not still be
// attacked by the opponent afterwards — the swap algorithm otherwise has
// no notion of "moving into check" and would let a king capture illegally.
func leastValuableAttacker(pos *board.Position, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.Piece) {
	bishopAttacks := board.BishopAttacks(target, occupied)
	rookAttacks := board.RookAttacks(target, occupied)

	if attackers := pos.Pieces[side][board.Pawn] & board.PawnAttacks(target, side.Other()) & occupied; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Pawn, side)
	}
	if attackers := pos.Pieces[side][board.Knight] & board.KnightAttacks(target) & occupied; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Knight, side)
	}
	if attackers := pos.Pieces[side][board.Bishop] & bishopAttacks & occupied; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Bishop, side)
	}
	if attackers := pos.Pieces[side][board.Rook] & rookAttacks & occupied; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Rook, side)
	}
	if attackers := pos.Pieces[side][board.Queen] & (bishopAttacks | rookAttacks) & occupied; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Queen, side)
	}
	if attackers := pos.Pieces[side][board.King] & board.KingAttacks(target) & occupied; attackers != 0 {
		sq := attackers.LSB()
		afterKingMoves := occupied &^ board.SquareBB(sq)
		if pos.AttackersByColor(target, side.Other(), afterKingMoves)&afterKingMoves == 0 {
			return sq, board.NewPiece(board.King, side)
		}
	}
	return board.NoSquare, board.NoPiece
}
