package urlfam

// SchemeStage is a URL that has a scheme but no host yet. The only thing that
// can be done with it is to supply the host.
type SchemeStage struct {
	scheme string
}

// Scheme starts a URL whose host must be given next.
//
//	urlfam.Scheme("https").Host("example.com").Path("api")
func Scheme(scheme string) SchemeStage {
	return SchemeStage{scheme: scheme}
}

func (s SchemeStage) Host(host string) URL {
	return New(s.scheme, host)
}
