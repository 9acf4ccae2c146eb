package routes

import "github.com/gofiber/fiber/v2"

// Circle radius grows with the square root of the population so the marker
// area is proportional to it.
const mapPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Rail accessibility</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.legend { background: white; padding: 8px; line-height: 1.4; }
.legend span { display: inline-block; width: 12px; height: 12px; margin-right: 6px; }
</style>
</head>
<body>
<div id="map"></div>
<script>
const map = L.map('map').setView([51.1657, 10.4515], 6);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

fetch('/core/tiers').then(r => r.json()).then(tiers => {
  const colours = {};
  tiers.forEach(t => colours[t.tier] = t.colour);

  const legend = L.control({position: 'bottomright'});
  legend.onAdd = () => {
    const div = L.DomUtil.create('div', 'legend');
    div.innerHTML = tiers.map(t =>
      '<span style="background:' + t.colour + '"></span>' + t.tier + ' (' + t.population + ')'
    ).join('<br>');
    return div;
  };
  legend.addTo(map);

  fetch('/core/cells').then(r => r.json()).then(cells => {
    L.geoJSON(cells, {
      pointToLayer: (feature, latlng) => L.circleMarker(latlng, {
        radius: Math.max(2, Math.sqrt(feature.properties.population) / 4),
        color: colours[feature.properties.accessibility],
        fillOpacity: 0.6,
        stroke: false
      }).bindPopup(
        feature.properties.grid_id + '<br>' +
        'Population: ' + feature.properties.population + '<br>' +
        'Distance: ' + feature.properties.distance_km.toFixed(2) + ' km<br>' +
        'Stops per day: ' + feature.properties.stop_frequency + '<br>' +
        'Accessibility: ' + feature.properties.accessibility
      )
    }).addTo(map);
  });
});

fetch('/core/stations').then(r => r.ok ? r.json() : null).then(stations => {
  if (!stations) return;
  const served = L.layerGroup(), unserved = L.layerGroup();
  stations.features.forEach(f => {
    const [lon, lat] = f.geometry.coordinates;
    const marker = L.circleMarker([lat, lon], {radius: 3, color: f.properties.avg_daily_stops > 0 ? 'black' : 'grey'})
      .bindPopup(f.properties.stop_name + '<br>' + f.properties.avg_daily_stops + ' stops per day');
    marker.addTo(f.properties.avg_daily_stops > 0 ? served : unserved);
  });
  L.control.layers(null, {'Served stations': served, 'Unserved stations': unserved}).addTo(map);
});
</script>
</body>
</html>
`

func MapPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(mapPage)
}
