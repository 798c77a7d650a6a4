package auth_handlers

import (
	"strings"

	auth_dto "github.com/Xenn-00/stufen-meister/internal/dtos/auth-dto"
	"github.com/gofiber/fiber/v2"
)

func detectDeviceType(ua string) string {
	ua = strings.ToLower(ua)

	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone"):
		return "iPhone"
	case strings.Contains(ua, "ipad"):
		return "iPad"
	case strings.Contains(ua, "windows"):
		return "Windows PC"
	case strings.Contains(ua, "macintosh"):
		return "MacOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Unknown Device"
	}
}

// loginMetadata: ein gesetzter X-Device-Name hat Vorrang vor der User-Agent-Erkennung.
func loginMetadata(c *fiber.Ctx) auth_dto.LoginMetadata {
	ua := c.Get(fiber.HeaderUserAgent)
	if ua == "" {
		ua = "Unknown-Client"
	}

	device := strings.TrimSpace(c.Get("X-Device-Name"))
	if device == "" {
		device = detectDeviceType(ua)
	}

	return auth_dto.LoginMetadata{
		UserAgent: ua,
		Device:    device,
		IP:        c.IP(),
	}
}
