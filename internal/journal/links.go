package journal

import (
	"net/url"

	"zhurnal/internal/config"
)

// Links строит внешние URL рейтингового сайта по коду журнала
type Links struct {
	searchBase string
	thumbBase  string
}

func NewLinks(cfg config.RankingConfig) Links {
	return Links{
		searchBase: cfg.SearchURL,
		thumbBase:  cfg.ThumbURL,
	}
}

// SearchURL страница поиска журнала: ?q=<code>&tip=sid&exact=no
func (l Links) SearchURL(code string) string {
	v := url.Values{}
	v.Set("q", code)
	v.Set("tip", "sid")
	v.Set("exact", "no")
	return l.searchBase + "?" + v.Encode()
}

// ThumbURL миниатюра журнала: ?id=<code>
func (l Links) ThumbURL(code string) string {
	v := url.Values{}
	v.Set("id", code)
	return l.thumbBase + "?" + v.Encode()
}
