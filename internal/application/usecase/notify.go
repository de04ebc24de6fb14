package usecase

import "time"

// Окно тишины между рассылками по одному ресурсу.
const notifyWindow = 4 * time.Hour

// ShouldNotify: шлём, если рассылки ещё не было или прошлая была
// больше четырёх часов назад. Сколько правок случилось внутри окна —
// не важно, письмо одно на окно.
func ShouldNotify(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.Sub(*last) > notifyWindow
}
