package threatlist

// findRequest is the body of a threatMatches:find call.
type findRequest struct {
	Client     clientInfo `json:"client"`
	ThreatInfo threatInfo `json:"threatInfo"`
}

type clientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type threatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []threatEntry `json:"threatEntries"`
}

type threatEntry struct {
	URL string `json:"url"`
}

func (c *Client) newRequest(urls []string) findRequest {
	entries := make([]threatEntry, len(urls))
	for i, u := range urls {
		entries[i] = threatEntry{URL: u}
	}
	return findRequest{
		Client: clientInfo{
			ClientID:      c.clientID,
			ClientVersion: c.clientVersion,
		},
		ThreatInfo: threatInfo{
			ThreatTypes:      threatTypes,
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    entries,
		},
	}
}

// findResponse is the body returned by threatMatches:find.
// The matched URL is normally nested under threat.url, but some proxies and
// older deployments flatten it to url.
type findResponse struct {
	Matches []struct {
		ThreatType string `json:"threatType"`
		URL        string `json:"url"`
		Threat     *struct {
			URL string `json:"url"`
		} `json:"threat"`
	} `json:"matches"`
}

func (r findResponse) matches() []Match {
	out := make([]Match, 0, len(r.Matches))
	for _, m := range r.Matches {
		u := UnknownURL
		switch {
		case m.Threat != nil && m.Threat.URL != "":
			u = m.Threat.URL
		case m.URL != "":
			u = m.URL
		}
		out = append(out, Match{URL: u, ThreatType: m.ThreatType})
	}
	return out
}
