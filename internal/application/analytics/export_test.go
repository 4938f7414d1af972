package analytics

import "time"

// SetClock fija el reloj en los tests.
func (uc *DashboardUseCase) SetClock(now func() time.Time) { uc.now = now }

// SetClock fija el reloj en los tests.
func (uc *ReportUseCase) SetClock(now func() time.Time) { uc.now = now }
