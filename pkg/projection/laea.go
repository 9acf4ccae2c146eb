// Package projection converts projected grid coordinates into WGS84.
//
// Only ETRS89 Lambert Azimuthal Equal Area (EPSG:3035) is implemented, the
// formulas follow IOGP Guidance Note 7-2 section 3.2.4 (oblique ellipsoidal case).
package projection

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	EPSGLambertEurope = 3035
	EPSGWGS84         = 4326
)

type Transformer interface {
	ToWGS84(easting float64, northing float64) (orb.Point, error)
	FromWGS84(point orb.Point) (easting float64, northing float64)
}

func NewTransformer(epsg int) (Transformer, error) {
	switch epsg {
	case EPSGLambertEurope:
		return NewLambertAzimuthalEqualArea(6378137.0, 1/298.257222101, 52, 10, 4321000, 3210000), nil
	default:
		return nil, fmt.Errorf("unsupported projection EPSG:%d", epsg)
	}
}

type LambertAzimuthalEqualArea struct {
	a  float64
	e  float64
	e2 float64

	origin  orb.Point
	lambda0 float64
	falseE  float64
	falseN  float64

	qP    float64
	beta0 float64
	rq    float64
	d     float64
}

func NewLambertAzimuthalEqualArea(semiMajor float64, flattening float64, latitudeOrigin float64, longitudeOrigin float64, falseEasting float64, falseNorthing float64) *LambertAzimuthalEqualArea {
	e2 := 2*flattening - flattening*flattening
	e := math.Sqrt(e2)
	phi0 := latitudeOrigin * math.Pi / 180

	l := &LambertAzimuthalEqualArea{
		a:       semiMajor,
		e:       e,
		e2:      e2,
		origin:  orb.Point{longitudeOrigin, latitudeOrigin},
		lambda0: longitudeOrigin * math.Pi / 180,
		falseE:  falseEasting,
		falseN:  falseNorthing,
	}

	l.qP = l.q(math.Pi / 2)
	l.beta0 = math.Asin(l.q(phi0) / l.qP)
	l.rq = semiMajor * math.Sqrt(l.qP/2)
	l.d = semiMajor * (math.Cos(phi0) / math.Sqrt(1-e2*math.Sin(phi0)*math.Sin(phi0))) / (l.rq * math.Cos(l.beta0))

	return l
}

func (l *LambertAzimuthalEqualArea) q(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return (1 - l.e2) * (sinPhi/(1-l.e2*sinPhi*sinPhi) - (1/(2*l.e))*math.Log((1-l.e*sinPhi)/(1+l.e*sinPhi)))
}

func (l *LambertAzimuthalEqualArea) FromWGS84(point orb.Point) (float64, float64) {
	phi := point.Lat() * math.Pi / 180
	lambda := point.Lon() * math.Pi / 180

	beta := math.Asin(l.q(phi) / l.qP)
	deltaLambda := lambda - l.lambda0

	b := l.rq * math.Sqrt(2/(1+math.Sin(l.beta0)*math.Sin(beta)+math.Cos(l.beta0)*math.Cos(beta)*math.Cos(deltaLambda)))

	easting := l.falseE + (b*l.d)*math.Cos(beta)*math.Sin(deltaLambda)
	northing := l.falseN + (b/l.d)*(math.Cos(l.beta0)*math.Sin(beta)-math.Sin(l.beta0)*math.Cos(beta)*math.Cos(deltaLambda))

	return easting, northing
}

func (l *LambertAzimuthalEqualArea) ToWGS84(easting float64, northing float64) (orb.Point, error) {
	dE := easting - l.falseE
	dN := northing - l.falseN

	rho := math.Sqrt(math.Pow(dE/l.d, 2) + math.Pow(l.d*dN, 2))
	if rho == 0 {
		return l.origin, nil
	}

	ratio := rho / (2 * l.rq)
	if ratio > 1 {
		return orb.Point{}, fmt.Errorf("coordinate %.0f,%.0f is outside the projection domain", easting, northing)
	}
	c := 2 * math.Asin(ratio)

	betaPrime := math.Asin(math.Cos(c)*math.Sin(l.beta0) + (l.d*dN*math.Sin(c)*math.Cos(l.beta0))/rho)
	lambda := l.lambda0 + math.Atan2(
		dE*math.Sin(c),
		l.d*rho*math.Cos(l.beta0)*math.Cos(c)-l.d*l.d*dN*math.Sin(l.beta0)*math.Sin(c),
	)

	e4 := l.e2 * l.e2
	e6 := e4 * l.e2
	phi := betaPrime +
		(l.e2/3+31*e4/180+517*e6/5040)*math.Sin(2*betaPrime) +
		(23*e4/360+251*e6/3780)*math.Sin(4*betaPrime) +
		(761*e6/45360)*math.Sin(6*betaPrime)

	return orb.Point{lambda * 180 / math.Pi, phi * 180 / math.Pi}, nil
}
