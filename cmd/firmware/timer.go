//go:build tinygo && arduino

package main

import (
	"device/avr"
	"runtime/interrupt"
)

// startTimer - Timer 2 in CTC mode raises TIMER2_COMPA every timerCounts
// ticks of clk/256, and every interrupt advances the clock. Timer 0 stays
// with the runtime.
func startTimer() {
	avr.TCCR2A.Set(avr.TCCR2A_WGM21)
	avr.TCCR2B.Set(avr.TCCR2B_CS22 | avr.TCCR2B_CS21)
	avr.OCR2A.Set(timerCounts - 1)
	avr.TCNT2.Set(0)

	interrupt.New(avr.IRQ_TIMER2_COMPA, func(interrupt.Interrupt) {
		ticks.Tick()
	})

	avr.TIMSK2.SetBits(avr.TIMSK2_OCIE2A)
}
