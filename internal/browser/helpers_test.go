package browser

import "github.com/chromedp/cdproto/cdp"

func cdpFrame(id string) cdp.FrameID {
	return cdp.FrameID(id)
}
