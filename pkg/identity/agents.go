package identity

import "fmt"

// Platform strings observed across real desktop and mobile browsers. Combined
// with the version lists below they yield a pool of several hundred distinct
// client identities
var platforms = []string{
	"Windows NT 10.0; Win64; x64",
	"Windows NT 10.0; WOW64",
	"Windows NT 6.1; Win64; x64",
	"Macintosh; Intel Mac OS X 10_15_7",
	"Macintosh; Intel Mac OS X 10_14_6",
	"Macintosh; Intel Mac OS X 10_13_6",
	"X11; Linux x86_64",
	"X11; Ubuntu; Linux x86_64",
	"X11; Fedora; Linux x86_64",
	"X11; CrOS x86_64 14541.0.0",
}

var chromeVersions = []string{
	"100.0.4896.127", "101.0.4951.64", "102.0.5005.63", "103.0.5060.134",
	"104.0.5112.102", "105.0.5195.127", "106.0.5249.119", "107.0.5304.110",
	"108.0.5359.125", "109.0.5414.120", "110.0.5481.178", "111.0.5563.64",
	"112.0.5615.138", "113.0.5672.127", "114.0.5735.199", "115.0.5790.170",
	"116.0.5845.188", "117.0.5938.132", "118.0.5993.88", "119.0.6045.159",
}

var firefoxVersions = []string{
	"98.0", "99.0", "100.0", "101.0", "102.0", "103.0", "104.0", "105.0",
	"106.0", "107.0", "108.0", "109.0", "110.0", "111.0", "112.0",
}

// Extra identities that don't fit the generated patterns
var extraAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.6.1 Safari/605.1.15",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 16_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (iPad; CPU OS 15_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.6 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/109.0.5414.120 Safari/537.36 Edg/109.0.1518.70",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.5481.104 Safari/537.36 Edg/110.0.1587.57",
	"Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.5615.136 Mobile Safari/537.36",
	"Mozilla/5.0 (Linux; Android 12; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.5481.154 Mobile Safari/537.36",
}

// DefaultAgents builds the static identity pool: every platform/version
// combination for Chrome and Firefox plus the literal extras above
func DefaultAgents() []string {
	agents := make([]string, 0, len(platforms)*(len(chromeVersions)+len(firefoxVersions))+len(extraAgents))
	for _, p := range platforms {
		for _, v := range chromeVersions {
			agents = append(agents, fmt.Sprintf(
				"Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36", p, v))
		}
		for _, v := range firefoxVersions {
			agents = append(agents, fmt.Sprintf(
				"Mozilla/5.0 (%s; rv:%s) Gecko/20100101 Firefox/%s", p, v, v))
		}
	}
	return append(agents, extraAgents...)
}
