package crawlers

// Scripts evaluated in the rendered page by RodDriver. Each returns a JSON
// string so results decode into typed Go values.

const jsAnchors = `() => JSON.stringify(Array.from(document.querySelectorAll('a[href]')).map(a => ({
	href: a.getAttribute('href') || '',
	text: (a.innerText || a.textContent || '').trim(),
	title: a.getAttribute('title') || ''
})))`

const jsImageSources = `() => {
	const out = [];
	document.querySelectorAll('img[src]').forEach(img => out.push(img.getAttribute('src')));
	document.querySelectorAll('*').forEach(el => {
		const bg = getComputedStyle(el).backgroundImage;
		if (bg && bg !== 'none') out.push(bg);
	});
	return JSON.stringify(out);
}`

const jsFontFamilies = `() => {
	const out = [];
	const walk = (rules) => {
		for (const r of Array.from(rules)) {
			if (r.style) {
				const f = r.style.getPropertyValue('font-family') || r.style.fontFamily;
				if (f) out.push(f);
			}
			if (r.cssRules) walk(r.cssRules);
		}
	};
	for (const sheet of Array.from(document.styleSheets)) {
		let rules;
		try { rules = sheet.cssRules; } catch (e) { continue; }
		if (rules) walk(rules);
	}
	document.querySelectorAll('[style]').forEach(el => {
		if (el.style.fontFamily) out.push(el.style.fontFamily);
	});
	return JSON.stringify(out);
}`

const jsVisibleText = `() => JSON.stringify(document.body ? document.body.innerText : '')`
