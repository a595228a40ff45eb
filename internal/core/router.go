package core

import (
	"sort"
	"strings"

	"github.com/beetlebot/travel-options/internal/config"
)

type Router struct {
	cfg          *config.Config
	legProviders []LegProvider
}

func NewRouter(cfg *config.Config) *Router {
	return &Router{cfg: cfg}
}

func (r *Router) Mode() config.Mode {
	return r.cfg.Mode
}

func (r *Router) RegisterLegs(p LegProvider) {
	r.legProviders = append(r.legProviders, p)
}

// ActiveLegProviders returns the providers to query, highest configured
// priority first. Equal priorities keep registration order.
func (r *Router) ActiveLegProviders() []LegProvider {
	var out []LegProvider
	for _, p := range r.legProviders {
		if r.shouldUse(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return r.cfg.ProviderPriority(out[i].Name()) > r.cfg.ProviderPriority(out[j].Name())
	})
	return out
}

func (r *Router) shouldUse(p LegProvider) bool {
	if !r.cfg.ProviderEnabled(p.Name()) {
		return false
	}
	switch r.cfg.Mode {
	case config.ModeMock:
		return isMockProvider(p.Name())
	case config.ModeLive:
		return !isMockProvider(p.Name())
	case config.ModeHybrid:
		if !isMockProvider(p.Name()) {
			return liveUsable(p)
		}
		return r.noLiveAlternative()
	}
	return false
}

func (r *Router) noLiveAlternative() bool {
	for _, p := range r.legProviders {
		if !isMockProvider(p.Name()) && r.cfg.ProviderEnabled(p.Name()) && liveUsable(p) {
			return false
		}
	}
	return true
}

func liveUsable(p LegProvider) bool {
	ok, _ := p.Available()
	return ok
}

func isMockProvider(name string) bool {
	return strings.HasPrefix(name, "mock_")
}

func (r *Router) ProviderInfos() []ProviderInfo {
	var infos []ProviderInfo

	for _, p := range r.legProviders {
		info := ProviderInfo{
			Name:         p.Name(),
			Capabilities: p.Capabilities(),
			Tier:         p.Tier(),
		}
		if avail, reason := p.Available(); avail {
			info.Status = "active"
		} else {
			info.Status = "no_credentials"
			info.Reason = reason
		}
		switch {
		case !r.cfg.ProviderEnabled(p.Name()):
			info.Status = "inactive"
			info.Reason = "disabled in config"
		case r.cfg.Mode == config.ModeMock && !isMockProvider(p.Name()):
			info.Status = "inactive"
			info.Reason = "mode is mock"
		case r.cfg.Mode == config.ModeLive && isMockProvider(p.Name()):
			info.Status = "inactive"
			info.Reason = "mode is live"
		}
		infos = append(infos, info)
	}

	return infos
}
