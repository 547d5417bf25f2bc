package model

import (
	"fmt"
	"strconv"
	"strings"
)

// GlobalAction identifies a system-wide action such as back or home.
// Values match the host accessibility framework's ids and are forwarded as-is.
type GlobalAction int

const (
	GlobalBack          GlobalAction = 1
	GlobalHome          GlobalAction = 2
	GlobalRecents       GlobalAction = 3
	GlobalNotifications GlobalAction = 4
	GlobalQuickSettings GlobalAction = 5
	GlobalPowerDialog   GlobalAction = 6
)

var globalActionNames = map[string]GlobalAction{
	"back":           GlobalBack,
	"home":           GlobalHome,
	"recents":        GlobalRecents,
	"notifications":  GlobalNotifications,
	"quick-settings": GlobalQuickSettings,
	"power-dialog":   GlobalPowerDialog,
}

// ParseGlobalAction accepts a name ("back", "home", ...) or a raw integer id.
func ParseGlobalAction(s string) (GlobalAction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if a, ok := globalActionNames[key]; ok {
		return a, nil
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("unknown global action: %q (expected back, home, recents, notifications, quick-settings, power-dialog, or an integer id)", s)
	}
	return GlobalAction(n), nil
}

func (a GlobalAction) String() string {
	for name, v := range globalActionNames {
		if v == a {
			return name
		}
	}
	return strconv.Itoa(int(a))
}
